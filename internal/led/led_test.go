package led

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPatternStringRoundTrip(t *testing.T) {
	for _, p := range []Pattern{Off, SlowBlink, Solid, FastBlink, Emergency} {
		got, ok := ParsePattern(p.String())
		require.True(t, ok, p.String())
		require.Equal(t, p, got)
	}

	_, ok := ParsePattern("disco")
	require.False(t, ok)
}

func TestLogDriverInit(t *testing.T) {
	d := NewLogDriver(zap.NewNop())

	require.NoError(t, d.Init(Config{Pin: 2, ActiveHigh: true}))
	require.Error(t, d.Init(Config{Pin: -1}))
}
