package chart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveAyanamsha(t *testing.T) {
	tests := []struct {
		name string
		want Ayanamsha
	}{
		{"lahiri", AyanamshaLahiri},
		{"fagan_bradley", AyanamshaFaganBradley},
		{"krishnamurti", AyanamshaKrishnamurti},
		{"raman", AyanamshaRaman},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, ResolveAyanamsha(tc.name), tc.name)
		require.True(t, IsKnownAyanamsha(tc.name))
		require.Equal(t, tc.name, tc.want.String())
	}
}

func TestResolveAyanamshaFallsBackToLahiri(t *testing.T) {
	for _, name := range []string{"", "tropical", "Lahiri", "RAMAN", "fagan-bradley", "yukteshwar"} {
		first := ResolveAyanamsha(name)
		require.Equal(t, AyanamshaLahiri, first, "name %q", name)
		require.Equal(t, first, ResolveAyanamsha(name), "fallback must be deterministic for %q", name)
		require.False(t, IsKnownAyanamsha(name))
	}
}
