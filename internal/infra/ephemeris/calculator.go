package ephemeris

import (
	"errors"
	"fmt"
)

// Body identifiers accepted by CalcUT.
const (
	BodySun      = 0
	BodyMoon     = 1
	BodyMercury  = 2
	BodyVenus    = 3
	BodyMars     = 4
	BodyJupiter  = 5
	BodySaturn   = 6
	BodyUranus   = 7
	BodyNeptune  = 8
	BodyPluto    = 9
	BodyMeanNode = 10
)

// Computation flags accepted by CalcUT and HousesEx.
const (
	FlagSpeed    = 256
	FlagSidereal = 64 * 1024
)

const (
	// speedStep is the half width, in days, of the symmetric difference used for speeds.
	speedStep = 0.5
	// meanNodeDistance is the nominal distance reported for the lunar node, in AU.
	meanNodeDistance = 0.0025695549
)

// ErrUnsupportedBody is returned for body identifiers the calculator has no theory for.
var ErrUnsupportedBody = errors.New("unsupported body")

// ErrUnknownSiderealMode is returned when the current sidereal mode has no offset model.
var ErrUnknownSiderealMode = errors.New("unknown sidereal mode")

var planetElements = map[int]orbitalElements{
	BodyMercury: mercuryElements,
	BodyVenus:   venusElements,
	BodyMars:    marsElements,
	BodyJupiter: jupiterElements,
	BodySaturn:  saturnElements,
	BodyUranus:  uranusElements,
	BodyNeptune: neptuneElements,
	BodyPluto:   plutoElements,
}

// Calculator is a low precision analytic ephemeris. Like the library it
// stands in for, the sidereal mode is state on the calculator and applies to
// every subsequent sidereal computation. A Calculator is not safe for
// concurrent use; Provider serialises access.
type Calculator struct {
	mode int
}

// NewCalculator returns a calculator in Lahiri mode.
func NewCalculator() *Calculator {
	return &Calculator{mode: SiderealLahiri}
}

// SetSiderealMode selects the ayanamsha applied when FlagSidereal is set.
func (c *Calculator) SetSiderealMode(mode int) {
	c.mode = mode
}

// SiderealMode reports the current mode.
func (c *Calculator) SiderealMode() int {
	return c.mode
}

// CalcUT returns longitude, latitude, distance and, with FlagSpeed, their
// daily rates for a body at a UT Julian day.
func (c *Calculator) CalcUT(jd float64, body int, flags int) ([6]float64, error) {
	var out [6]float64
	lon, lat, dist, err := c.position(jd, body, flags)
	if err != nil {
		return out, err
	}
	out[0], out[1], out[2] = lon, lat, dist
	if flags&FlagSpeed == 0 {
		return out, nil
	}
	lon0, lat0, dist0, err := c.position(jd-speedStep, body, flags)
	if err != nil {
		return out, err
	}
	lon1, lat1, dist1, err := c.position(jd+speedStep, body, flags)
	if err != nil {
		return out, err
	}
	span := 2 * speedStep
	out[3] = normalizeSigned(lon1-lon0) / span
	out[4] = (lat1 - lat0) / span
	out[5] = (dist1 - dist0) / span
	return out, nil
}

// Houses returns tropical cusps and the ascendant and midheaven.
func (c *Calculator) Houses(jd, latitude, longitude float64, system byte) ([12]float64, [2]float64, error) {
	return c.HousesEx(jd, 0, latitude, longitude, system)
}

// HousesEx is Houses with flags; FlagSidereal shifts cusps by the current mode's ayanamsha.
func (c *Calculator) HousesEx(jd float64, flags int, latitude, longitude float64, system byte) ([12]float64, [2]float64, error) {
	var ascmc [2]float64
	if system != 'P' {
		return [12]float64{}, ascmc, fmt.Errorf("%w: %q", ErrUnsupportedHouseSystem, system)
	}
	cusps, angles, err := placidus(jd, latitude, longitude)
	if err != nil {
		return cusps, ascmc, err
	}
	ascmc[0], ascmc[1] = angles.ascendant, angles.midheaven
	if flags&FlagSidereal == 0 {
		return cusps, ascmc, nil
	}
	offset, ok := Ayanamsha(c.mode, (jd-2451545.0)/36525.0)
	if !ok {
		return [12]float64{}, [2]float64{}, fmt.Errorf("%w: %d", ErrUnknownSiderealMode, c.mode)
	}
	for i := range cusps {
		cusps[i] = normalize(cusps[i] - offset)
	}
	ascmc[0] = normalize(ascmc[0] - offset)
	ascmc[1] = normalize(ascmc[1] - offset)
	return cusps, ascmc, nil
}

func (c *Calculator) position(jd float64, body int, flags int) (lon, lat, dist float64, err error) {
	t := (jd - 2451545.0) / 36525.0
	switch body {
	case BodySun:
		earth := earthElements.heliocentric(t)
		lon, lat, dist = vector{-earth.x, -earth.y, -earth.z}.spherical()
		lon = normalize(lon + precession(t))
	case BodyMoon:
		lon, lat, dist = moonPosition(t)
	case BodyMeanNode:
		lon, lat, dist = meanNode(t), 0, meanNodeDistance
	default:
		el, ok := planetElements[body]
		if !ok {
			return 0, 0, 0, fmt.Errorf("%w: %d", ErrUnsupportedBody, body)
		}
		geo := el.heliocentric(t).sub(earthElements.heliocentric(t))
		lon, lat, dist = geo.spherical()
		lon = normalize(lon + precession(t))
	}
	if flags&FlagSidereal != 0 {
		offset, ok := Ayanamsha(c.mode, t)
		if !ok {
			return 0, 0, 0, fmt.Errorf("%w: %d", ErrUnknownSiderealMode, c.mode)
		}
		lon = normalize(lon - offset)
	}
	return lon, lat, dist, nil
}
