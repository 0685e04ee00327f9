package chart

import "math"

// J2000 is the Julian day of 2000-01-01 12:00 UT.
const J2000 JulianDay = 2451545.0

// ToJulianDay converts a birth moment to a Julian day in UT.
// The UTC hour may fall outside [0,24) after the offset is removed; the
// calendar conversion carries it into the neighbouring day.
func ToJulianDay(m BirthMoment) JulianDay {
	civil := float64(m.Hour) + float64(m.Minute)/60.0 + float64(m.Second)/3600.0
	utc := civil - m.UTCOffsetHours
	return CalendarToJulianDay(m.Year, m.Month, m.Day, utc)
}

// CalendarToJulianDay applies the proleptic Gregorian calendar conversion.
func CalendarToJulianDay(year, month, day int, hour float64) JulianDay {
	y, mo := float64(year), float64(month)
	if month <= 2 {
		y--
		mo += 12
	}
	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)
	jd := math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(mo+1)) + float64(day) + b - 1524.5
	return JulianDay(jd + hour/24.0)
}

// Centuries returns Julian centuries elapsed since J2000.
func (jd JulianDay) Centuries() float64 {
	return float64(jd-J2000) / 36525.0
}
