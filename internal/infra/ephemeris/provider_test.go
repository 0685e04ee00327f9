package ephemeris

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/valentinromain/astrosiderale/internal/domain/chart"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestProviderResolvesEveryCanonicalBody(t *testing.T) {
	p := NewProvider()
	flags := chart.PositionFlags{Sidereal: true, Ayanamsha: chart.AyanamshaLahiri}

	for _, body := range chart.CanonicalBodies {
		pos, err := p.PositionAt(context.Background(), fixtureJD, body, flags)
		require.NoError(t, err, body.String())
		require.GreaterOrEqual(t, pos.Longitude, 0.0)
		require.Less(t, pos.Longitude, 360.0)
	}
}

func TestProviderPassesModePerCall(t *testing.T) {
	p := NewProvider()
	ctx := context.Background()

	lahiri, err := p.PositionAt(ctx, fixtureJD, chart.Sun, chart.PositionFlags{Sidereal: true, Ayanamsha: chart.AyanamshaLahiri})
	require.NoError(t, err)
	fagan, err := p.PositionAt(ctx, fixtureJD, chart.Sun, chart.PositionFlags{Sidereal: true, Ayanamsha: chart.AyanamshaFaganBradley})
	require.NoError(t, err)
	require.InDelta(t, 24.740300-23.857092, lahiri.Longitude-fagan.Longitude, 1e-9)

	tropical, err := p.PositionAt(ctx, fixtureJD, chart.Sun, chart.PositionFlags{})
	require.NoError(t, err)
	offset, _ := Ayanamsha(SiderealLahiri, (fixtureJD-2451545.0)/36525.0)
	require.Less(t, angularDistance(tropical.Longitude-offset, lahiri.Longitude), 1e-9)
}

func TestProviderConcurrentModesMatchSequential(t *testing.T) {
	p := NewProvider()
	ctx := context.Background()
	modes := []chart.Ayanamsha{
		chart.AyanamshaLahiri, chart.AyanamshaFaganBradley,
		chart.AyanamshaRaman, chart.AyanamshaKrishnamurti,
	}

	want := make(map[chart.Ayanamsha][]float64)
	for _, mode := range modes {
		for _, body := range chart.CanonicalBodies {
			pos, err := p.PositionAt(ctx, fixtureJD, body, chart.PositionFlags{Sidereal: true, Ayanamsha: mode})
			require.NoError(t, err)
			want[mode] = append(want[mode], pos.Longitude)
		}
	}

	const rounds = 8
	got := make([][]float64, rounds*len(modes))
	var wg sync.WaitGroup
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mode := modes[i%len(modes)]
			for _, body := range chart.CanonicalBodies {
				pos, err := p.PositionAt(ctx, fixtureJD, body, chart.PositionFlags{Sidereal: true, Ayanamsha: mode})
				if err != nil {
					return
				}
				got[i] = append(got[i], pos.Longitude)
			}
		}(i)
	}
	wg.Wait()

	for i, longitudes := range got {
		mode := modes[i%len(modes)]
		require.Equal(t, want[mode], longitudes, mode.String())
	}
}

func TestProviderHousesAt(t *testing.T) {
	p := NewProvider()
	flags := chart.PositionFlags{Sidereal: true, Ayanamsha: chart.AyanamshaLahiri}

	cusps, angles, err := p.HousesAt(context.Background(), fixtureJD, nycLatitude, nycLongitude, chart.HouseSystemPlacidus, flags)
	require.NoError(t, err)
	require.Equal(t, cusps[0], angles.Ascendant)
	require.Less(t, angularDistance(145.738, angles.Ascendant), 0.05)

	_, _, err = p.HousesAt(context.Background(), fixtureJD, 80, nycLongitude, chart.HouseSystemPlacidus, flags)
	require.ErrorIs(t, err, ErrCircumpolar)
}

func TestProviderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewProvider()
	_, err := p.PositionAt(ctx, fixtureJD, chart.Sun, chart.PositionFlags{})
	require.ErrorIs(t, err, context.Canceled)
	_, _, err = p.HousesAt(ctx, fixtureJD, 0, 0, chart.HouseSystemPlacidus, chart.PositionFlags{})
	require.ErrorIs(t, err, context.Canceled)
}
