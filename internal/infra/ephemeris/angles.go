package ephemeris

import "math"

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
)

func normalize(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

// normalizeSigned maps an angle into [-180,180).
func normalizeSigned(deg float64) float64 {
	return normalize(deg+180) - 180
}

func sind(deg float64) float64 { return math.Sin(deg * deg2rad) }
func cosd(deg float64) float64 { return math.Cos(deg * deg2rad) }
func tand(deg float64) float64 { return math.Tan(deg * deg2rad) }

// precession is the accumulated general precession in longitude since J2000, in degrees.
func precession(t float64) float64 {
	return 1.396971278*t + 0.0003086*t*t
}

// obliquity is the mean obliquity of the ecliptic of date, in degrees.
func obliquity(t float64) float64 {
	return 23.4392911 - 0.0130042*t - 1.64e-7*t*t + 5.04e-7*t*t*t
}

// siderealTime is Greenwich mean sidereal time in degrees for a UT Julian day.
func siderealTime(jd float64) float64 {
	t := (jd - 2451545.0) / 36525.0
	return normalize(280.46061837 + 360.98564736629*(jd-2451545.0) + 0.000387933*t*t - t*t*t/38710000.0)
}
