package chart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalendarToJulianDay(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		hour             float64
		want             JulianDay
	}{
		{name: "j2000", year: 2000, month: 1, day: 1, hour: 12, want: 2451545.0},
		{name: "sputnik", year: 1957, month: 10, day: 4, hour: 0.81 * 24, want: 2436116.31},
		{name: "january", year: 1987, month: 1, day: 27, hour: 0, want: 2446822.5},
		{name: "leap day", year: 2000, month: 2, day: 29, hour: 0, want: 2451603.5},
		{name: "fixture midnight", year: 1990, month: 5, day: 15, hour: 0, want: 2448026.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.InDelta(t, float64(tc.want), float64(CalendarToJulianDay(tc.year, tc.month, tc.day, tc.hour)), 1e-6)
		})
	}
}

func TestToJulianDayAppliesUTCOffset(t *testing.T) {
	moment := BirthMoment{Year: 1990, Month: 5, Day: 15, Hour: 14, Minute: 30, UTCOffsetHours: -4}
	require.InDelta(t, 2448026.5+18.5/24, float64(ToJulianDay(moment)), 1e-9)
}

func TestToJulianDayRollsIntoNextDay(t *testing.T) {
	late := BirthMoment{Year: 1990, Month: 12, Day: 31, Hour: 23, Minute: 0, UTCOffsetHours: -4}
	early := BirthMoment{Year: 1991, Month: 1, Day: 1, Hour: 3, Minute: 0}
	require.InDelta(t, float64(ToJulianDay(early)), float64(ToJulianDay(late)), 1e-9)
}

func TestToJulianDayIncludesSeconds(t *testing.T) {
	base := BirthMoment{Year: 2000, Month: 1, Day: 1, Hour: 12}
	withSeconds := base
	withSeconds.Minute = 1
	withSeconds.Second = 30
	require.InDelta(t, 90.0/86400.0, float64(ToJulianDay(withSeconds)-ToJulianDay(base)), 1e-9)
}

func TestCenturies(t *testing.T) {
	require.Equal(t, 0.0, J2000.Centuries())
	require.InDelta(t, 1.0, (J2000 + 36525).Centuries(), 1e-12)
}
