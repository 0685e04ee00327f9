package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/valentinromain/astrosiderale/internal/domain/chart"
	"github.com/valentinromain/astrosiderale/internal/infra/ephemeris"
	"github.com/valentinromain/astrosiderale/pkg/logger"
	"github.com/valentinromain/astrosiderale/pkg/util"
)

type computeOptions struct {
	date           string
	clock          string
	timezone       string
	latitude       float64
	longitude      float64
	ayanamsha      string
	siderealHouses bool
	logLevel       string
}

func newComputeCmd() *cobra.Command {
	opts := &computeOptions{}
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute a chart for a birth date, time and place",
		Example: "  chartctl compute --date 1990-05-15 --time 14:30:00 --tz -4 " +
			"--lat 40.7128 --lon -74.0060 --ayanamsha lahiri",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompute(cmd, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.date, "date", "", "birth date as YYYY-MM-DD")
	flags.StringVar(&opts.clock, "time", "12:00:00", "local birth time as HH:MM or HH:MM:SS")
	flags.StringVar(&opts.timezone, "tz", "0", "UTC offset in hours, e.g. -4, 5.5 or +05:30")
	flags.Float64Var(&opts.latitude, "lat", 0, "latitude in degrees, north positive")
	flags.Float64Var(&opts.longitude, "lon", 0, "longitude in degrees, east positive")
	flags.StringVar(&opts.ayanamsha, "ayanamsha", "lahiri", "lahiri, fagan_bradley, krishnamurti or raman")
	flags.BoolVar(&opts.siderealHouses, "sidereal-houses", false, "classify against sidereal rather than tropical cusps")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level for diagnostics on stderr")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func runCompute(cmd *cobra.Command, opts *computeOptions) error {
	req, err := opts.request()
	if err != nil {
		return err
	}
	if err := chart.Validate(req); err != nil {
		return err
	}

	log := logger.NewWithWriter(cmd.ErrOrStderr(), opts.logLevel, "text")
	provider := ephemeris.NewProvider()
	engine := chart.NewEngine(provider, provider, chart.EngineConfig{
		HouseSystem:    chart.HouseSystemPlacidus,
		SiderealHouses: opts.siderealHouses,
	}, log)

	result, err := engine.Assemble(cmd.Context(), req.BirthMoment())
	if err != nil {
		return fmt.Errorf("compute chart: %w", err)
	}
	return writeChart(cmd.OutOrStdout(), result)
}

func (o *computeOptions) request() (chart.Request, error) {
	day, err := time.Parse("2006-01-02", o.date)
	if err != nil {
		return chart.Request{}, fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
	}
	clock, err := parseClock(o.clock)
	if err != nil {
		return chart.Request{}, err
	}
	offset, err := util.ParseUTCOffset(o.timezone)
	if err != nil {
		return chart.Request{}, fmt.Errorf("--tz: %w", err)
	}
	return chart.Request{
		Year:      day.Year(),
		Month:     int(day.Month()),
		Day:       day.Day(),
		Hours:     clock.Hour(),
		Minutes:   clock.Minute(),
		Seconds:   clock.Second(),
		Latitude:  o.latitude,
		Longitude: o.longitude,
		Timezone:  offset,
		Ayanamsha: o.ayanamsha,
	}, nil
}

func parseClock(raw string) (time.Time, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("--time must be HH:MM or HH:MM:SS, got %q", raw)
}

func writeChart(w io.Writer, result chart.ChartResult) error {
	out := struct {
		JulianDay float64              `json:"julianDay"`
		Ayanamsha string               `json:"ayanamsha"`
		Ascendant float64              `json:"ascendant"`
		Planets   []chart.PlanetResult `json:"planets"`
		Omitted   []string             `json:"omitted,omitempty"`
	}{
		JulianDay: float64(result.JulianDay),
		Ayanamsha: result.Ayanamsha.String(),
		Ascendant: result.Ascendant,
		Planets:   result.Planets,
	}
	for _, body := range result.Omitted {
		out.Omitted = append(out.Omitted, body.String())
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
