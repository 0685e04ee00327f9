package chart

import "math"

// Classify assigns sign, degree within sign, house and retrograde state.
func Classify(pos BodyPosition, cusps HouseCusps) Placement {
	lon := NormalizeDegrees(pos.Longitude)
	sign := int(lon / 30)
	if sign > 11 {
		sign = 11
	}
	degrees := lon - float64(sign)*30
	if degrees < 0 {
		degrees = 0
	}
	return Placement{
		Sign:          Sign(sign),
		DegreesInSign: degrees,
		House:         HouseOf(lon, cusps),
		Retrograde:    pos.Speed < 0,
	}
}

// HouseOf returns the 1-based house containing the longitude. A house opens
// at its cusp (inclusive) and closes at the next cusp (exclusive); a house
// whose next cusp is smaller crosses 0°. The first matching house wins.
func HouseOf(longitude float64, cusps HouseCusps) int {
	lon := NormalizeDegrees(longitude)
	for i := 0; i < 12; i++ {
		cusp := NormalizeDegrees(cusps.Cusps[i])
		next := NormalizeDegrees(cusps.Cusps[(i+1)%12])
		if next < cusp {
			if lon >= cusp || lon < next {
				return i + 1
			}
			continue
		}
		if cusp <= lon && lon < next {
			return i + 1
		}
	}
	return nearestOpeningHouse(lon, cusps)
}

// nearestOpeningHouse picks the house whose cusp lies closest behind the
// longitude. It only runs for cusp sets that do not partition the circle,
// such as repeated or out-of-order boundaries.
func nearestOpeningHouse(lon float64, cusps HouseCusps) int {
	best, bestGap := 1, math.Inf(1)
	for i := 0; i < 12; i++ {
		gap := NormalizeDegrees(lon - NormalizeDegrees(cusps.Cusps[i]))
		if gap < bestGap {
			best, bestGap = i+1, gap
		}
	}
	return best
}

// NormalizeDegrees maps any angle into [0,360).
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}
