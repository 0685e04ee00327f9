package chart

import "context"

// PositionFlags selects the frame a position is computed in.
type PositionFlags struct {
	Sidereal  bool
	Ayanamsha Ayanamsha
}

// EclipticPosition is the full state vector returned by an ephemeris.
// The engine only consumes Longitude and LongitudeSpeed.
type EclipticPosition struct {
	Longitude      float64
	Latitude       float64
	Distance       float64
	LongitudeSpeed float64
	LatitudeSpeed  float64
	DistanceSpeed  float64
}

// Ephemeris resolves body positions at a Julian day.
type Ephemeris interface {
	PositionAt(ctx context.Context, jd JulianDay, body Body, flags PositionFlags) (EclipticPosition, error)
}

// Angles carries the chart angles reported alongside the cusps.
type Angles struct {
	Ascendant float64
	Midheaven float64
}

// HouseProvider computes house cusps for a moment and place.
type HouseProvider interface {
	HousesAt(ctx context.Context, jd JulianDay, latitude, longitude float64, system HouseSystem, flags PositionFlags) ([12]float64, Angles, error)
}
