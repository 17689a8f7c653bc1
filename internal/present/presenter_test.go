package present

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/luki/thermopipe/internal/aggregate"
	"github.com/luki/thermopipe/internal/led"
	"github.com/luki/thermopipe/internal/pipe"
)

// fakeDriver records every SetPattern call.
type fakeDriver struct {
	mu       sync.Mutex
	patterns []led.Pattern
	initErr  error
}

func (d *fakeDriver) Init(led.Config) error { return d.initErr }

func (d *fakeDriver) SetPattern(p led.Pattern) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.patterns = append(d.patterns, p)
}

func (d *fakeDriver) calls() []led.Pattern {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]led.Pattern(nil), d.patterns...)
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		mean float64
		want led.Pattern
	}{
		{10.0, led.SlowBlink},
		{19.99, led.SlowBlink},
		{20.00, led.Solid},
		{24.999, led.Solid},
		{25.0, led.FastBlink},
		{29.999, led.FastBlink},
		{30.0, led.Emergency},
		{42.0, led.Emergency},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, Classify(tc.mean), "mean %.3f", tc.mean)
	}
}

func TestPresenterWritesOnChangeOnly(t *testing.T) {
	q, err := pipe.New[aggregate.Summary]("summaries", 5)
	require.NoError(t, err)

	drv := &fakeDriver{}
	pr := New(q, drv, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go pr.Run(ctx)

	// Three summaries in the same band: one device write total.
	for i, mean := range []float64{22.0, 23.0, 24.0} {
		require.NoError(t, q.Send(aggregate.Summary{Mean: mean, SampleCount: uint32(i + 1)}, 0))
	}

	require.Eventually(t, func() bool {
		s, _ := pr.Latest()
		return s.SampleCount == 3
	}, time.Second, time.Millisecond)

	require.Equal(t, []led.Pattern{led.Solid}, drv.calls())
	require.Equal(t, uint64(1), pr.Writes())

	// A band change writes again.
	require.NoError(t, q.Send(aggregate.Summary{Mean: 31.0, SampleCount: 4}, 0))

	require.Eventually(t, func() bool {
		return pr.Writes() == 2
	}, time.Second, time.Millisecond)

	require.Equal(t, []led.Pattern{led.Solid, led.Emergency}, drv.calls())

	_, pat := pr.Latest()
	require.Equal(t, led.Emergency, pat)
}

func TestPresenterObserverSeesEverySummary(t *testing.T) {
	q, err := pipe.New[aggregate.Summary]("summaries", 5)
	require.NoError(t, err)

	var mu sync.Mutex
	var seen []led.Pattern

	pr := New(q, &fakeDriver{}, zap.NewNop())
	pr.OnSummary = func(_ aggregate.Summary, p led.Pattern) {
		mu.Lock()
		seen = append(seen, p)
		mu.Unlock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go pr.Run(ctx)

	for i, mean := range []float64{18.0, 18.5, 21.0} {
		require.NoError(t, q.Send(aggregate.Summary{Mean: mean, SampleCount: uint32(i + 1)}, 0))
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 3
	}, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []led.Pattern{led.SlowBlink, led.SlowBlink, led.Solid}, seen)
}
