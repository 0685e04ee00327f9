package ephemeris

import (
	"context"
	"sync"

	"github.com/valentinromain/astrosiderale/internal/domain/chart"
)

// Provider adapts a Calculator to the chart engine. The calculator's sidereal
// mode is shared state, so setting it and computing with it happen under one
// lock; concurrent charts with different ayanamshas cannot interleave.
type Provider struct {
	mu   sync.Mutex
	calc *Calculator
}

// NewProvider constructs a provider over a fresh calculator.
func NewProvider() *Provider {
	return &Provider{calc: NewCalculator()}
}

// PositionAt implements chart.Ephemeris.
func (p *Provider) PositionAt(ctx context.Context, jd chart.JulianDay, body chart.Body, flags chart.PositionFlags) (chart.EclipticPosition, error) {
	if err := ctx.Err(); err != nil {
		return chart.EclipticPosition{}, err
	}
	calcFlags := FlagSpeed
	if flags.Sidereal {
		calcFlags |= FlagSidereal
	}

	p.mu.Lock()
	p.calc.SetSiderealMode(int(flags.Ayanamsha))
	out, err := p.calc.CalcUT(float64(jd), int(body), calcFlags)
	p.mu.Unlock()
	if err != nil {
		return chart.EclipticPosition{}, err
	}
	return chart.EclipticPosition{
		Longitude:      out[0],
		Latitude:       out[1],
		Distance:       out[2],
		LongitudeSpeed: out[3],
		LatitudeSpeed:  out[4],
		DistanceSpeed:  out[5],
	}, nil
}

// HousesAt implements chart.HouseProvider.
func (p *Provider) HousesAt(ctx context.Context, jd chart.JulianDay, latitude, longitude float64, system chart.HouseSystem, flags chart.PositionFlags) ([12]float64, chart.Angles, error) {
	if err := ctx.Err(); err != nil {
		return [12]float64{}, chart.Angles{}, err
	}
	calcFlags := 0
	if flags.Sidereal {
		calcFlags |= FlagSidereal
	}

	p.mu.Lock()
	p.calc.SetSiderealMode(int(flags.Ayanamsha))
	cusps, ascmc, err := p.calc.HousesEx(float64(jd), calcFlags, latitude, longitude, byte(system))
	p.mu.Unlock()
	if err != nil {
		return [12]float64{}, chart.Angles{}, err
	}
	return cusps, chart.Angles{Ascendant: ascmc[0], Midheaven: ascmc[1]}, nil
}

var (
	_ chart.Ephemeris     = (*Provider)(nil)
	_ chart.HouseProvider = (*Provider)(nil)
)
