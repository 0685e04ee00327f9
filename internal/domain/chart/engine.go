package chart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// ErrInvalidJulianDay is returned when a birth moment does not map to a finite time.
var ErrInvalidJulianDay = errors.New("julian day is not finite")

// BodyOutcome records whether one body was resolved.
type BodyOutcome struct {
	Body     Body
	Position BodyPosition
	Err      error
}

// OK reports whether the body was resolved.
func (o BodyOutcome) OK() bool {
	return o.Err == nil
}

// Engine turns birth moments into classified charts.
type Engine struct {
	ephemeris Ephemeris
	houses    HouseProvider
	cfg       EngineConfig
	logger    *slog.Logger
}

// NewEngine wires the engine to its providers.
func NewEngine(ephemeris Ephemeris, houses HouseProvider, cfg EngineConfig, logger *slog.Logger) *Engine {
	if cfg.HouseSystem == 0 {
		cfg.HouseSystem = HouseSystemPlacidus
	}
	return &Engine{
		ephemeris: ephemeris,
		houses:    houses,
		cfg:       cfg,
		logger:    logger.With("component", "chart.engine"),
	}
}

// ComputeCusps asks the house provider for the twelve cusps. Any failure is fatal to the chart.
func (e *Engine) ComputeCusps(ctx context.Context, jd JulianDay, latitude, longitude float64, mode Ayanamsha) (HouseCusps, error) {
	flags := PositionFlags{Sidereal: e.cfg.SiderealHouses, Ayanamsha: mode}
	raw, angles, err := e.houses.HousesAt(ctx, jd, latitude, longitude, e.cfg.HouseSystem, flags)
	if err != nil {
		return HouseCusps{}, fmt.Errorf("houses at jd %.6f: %w", float64(jd), err)
	}
	var cusps HouseCusps
	for i, c := range raw {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return HouseCusps{}, fmt.Errorf("house %d cusp is not finite", i+1)
		}
		cusps.Cusps[i] = NormalizeDegrees(c)
	}
	cusps.Ascendant = cusps.Cusps[0]
	cusps.Midheaven = NormalizeDegrees(angles.Midheaven)
	return cusps, nil
}

// ResolvePosition fetches the sidereal longitude and speed of one body.
func (e *Engine) ResolvePosition(ctx context.Context, jd JulianDay, body Body, mode Ayanamsha) BodyOutcome {
	pos, err := e.ephemeris.PositionAt(ctx, jd, body, PositionFlags{Sidereal: true, Ayanamsha: mode})
	if err != nil {
		return BodyOutcome{Body: body, Err: err}
	}
	if math.IsNaN(pos.Longitude) || math.IsInf(pos.Longitude, 0) || math.IsNaN(pos.LongitudeSpeed) {
		return BodyOutcome{Body: body, Err: fmt.Errorf("%s position is not finite", body)}
	}
	return BodyOutcome{
		Body: body,
		Position: BodyPosition{
			Body:      body,
			Longitude: NormalizeDegrees(pos.Longitude),
			Speed:     pos.LongitudeSpeed,
		},
	}
}

// Assemble computes a full chart. Bodies the ephemeris cannot resolve are
// omitted; time normalisation, house failures and a cancelled context abort the chart.
func (e *Engine) Assemble(ctx context.Context, moment BirthMoment) (ChartResult, error) {
	jd := ToJulianDay(moment)
	if math.IsNaN(float64(jd)) || math.IsInf(float64(jd), 0) {
		return ChartResult{}, ErrInvalidJulianDay
	}
	mode := ResolveAyanamsha(moment.Ayanamsha)
	if err := ctx.Err(); err != nil {
		return ChartResult{}, err
	}

	cusps, err := e.ComputeCusps(ctx, jd, moment.Latitude, moment.Longitude, mode)
	if err != nil {
		return ChartResult{}, err
	}

	result := ChartResult{
		JulianDay: jd,
		Ayanamsha: mode,
		Ascendant: cusps.Ascendant,
		Planets:   make([]PlanetResult, 0, len(CanonicalBodies)),
	}
	for _, body := range CanonicalBodies {
		outcome := e.ResolvePosition(ctx, jd, body, mode)
		if errors.Is(outcome.Err, context.Canceled) || errors.Is(outcome.Err, context.DeadlineExceeded) {
			return ChartResult{}, outcome.Err
		}
		if !outcome.OK() {
			e.logger.Warn("body omitted from chart", "body", body.String(), "jd", float64(jd), "error", outcome.Err)
			result.Omitted = append(result.Omitted, body)
			continue
		}
		placement := Classify(outcome.Position, cusps)
		result.Planets = append(result.Planets, PlanetResult{
			Name:       body.String(),
			Degrees:    placement.DegreesInSign,
			Sign:       placement.Sign.String(),
			House:      placement.House,
			Retrograde: placement.Retrograde,
		})
	}
	return result, nil
}
