package ephemeris

import (
	"errors"
	"fmt"
	"math"
)

// ErrCircumpolar is returned when Placidus semi-arcs are undefined at the latitude.
var ErrCircumpolar = errors.New("placidus houses are undefined inside the polar circles")

// ErrUnsupportedHouseSystem is returned for house systems other than Placidus.
var ErrUnsupportedHouseSystem = errors.New("unsupported house system")

type houseAngles struct {
	ascendant float64
	midheaven float64
	armc      float64
}

// placidus computes tropical cusps of date. Index 0 is house 1.
func placidus(jd, latitude, longitude float64) ([12]float64, houseAngles, error) {
	var cusps [12]float64
	if math.Abs(latitude) >= 90 {
		return cusps, houseAngles{}, ErrCircumpolar
	}
	t := (jd - 2451545.0) / 36525.0
	eps := obliquity(t)
	armc := normalize(siderealTime(jd) + longitude)

	mc := normalize(math.Atan2(sind(armc), cosd(armc)*cosd(eps)) * rad2deg)
	asc := normalize(math.Atan2(cosd(armc), -(sind(armc)*cosd(eps)+tand(latitude)*sind(eps))) * rad2deg)

	c11, err := semiArcCusp(armc, eps, latitude, 1.0/3.0, true)
	if err != nil {
		return cusps, houseAngles{}, err
	}
	c12, err := semiArcCusp(armc, eps, latitude, 2.0/3.0, true)
	if err != nil {
		return cusps, houseAngles{}, err
	}
	c2, err := semiArcCusp(armc, eps, latitude, 2.0/3.0, false)
	if err != nil {
		return cusps, houseAngles{}, err
	}
	c3, err := semiArcCusp(armc, eps, latitude, 1.0/3.0, false)
	if err != nil {
		return cusps, houseAngles{}, err
	}

	cusps[0] = asc
	cusps[1] = c2
	cusps[2] = c3
	cusps[3] = normalize(mc + 180)
	cusps[4] = normalize(c11 + 180)
	cusps[5] = normalize(c12 + 180)
	cusps[6] = normalize(asc + 180)
	cusps[7] = normalize(c2 + 180)
	cusps[8] = normalize(c3 + 180)
	cusps[9] = mc
	cusps[10] = c11
	cusps[11] = c12
	return cusps, houseAngles{ascendant: asc, midheaven: mc, armc: armc}, nil
}

// semiArcCusp finds the ecliptic point whose hour angle is the given fraction
// of its semi-arc. Above the horizon the fraction is of the diurnal arc
// measured east of the meridian; below it, of the nocturnal arc measured
// from the lower meridian.
func semiArcCusp(armc, eps, latitude, fraction float64, diurnal bool) (float64, error) {
	ra := func(ad float64) float64 {
		if diurnal {
			return armc + fraction*(90+ad)
		}
		return armc + 180 - fraction*(90-ad)
	}
	lon := eclipticFromRA(ra(0), eps)
	for i := 0; i < 50; i++ {
		decl := math.Asin(sind(eps)*sind(lon)) * rad2deg
		x := tand(latitude) * tand(decl)
		if math.Abs(x) > 1 {
			return 0, fmt.Errorf("latitude %.4f: %w", latitude, ErrCircumpolar)
		}
		ad := math.Asin(x) * rad2deg
		next := eclipticFromRA(ra(ad), eps)
		if math.Abs(normalizeSigned(next-lon)) < 1e-10 {
			return next, nil
		}
		lon = next
	}
	return lon, nil
}

// eclipticFromRA returns the ecliptic longitude of the ecliptic point at a right ascension.
func eclipticFromRA(ra, eps float64) float64 {
	return normalize(math.Atan2(sind(ra), cosd(ra)*cosd(eps)) * rad2deg)
}
