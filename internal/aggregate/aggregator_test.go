package aggregate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/luki/thermopipe/internal/pipe"
	"github.com/luki/thermopipe/internal/sensor"
)

func TestAggregatorSlidingMean(t *testing.T) {
	in, err := pipe.New[sensor.Reading]("readings", 10)
	require.NoError(t, err)
	out, err := pipe.New[Summary]("summaries", 10)
	require.NoError(t, err)

	agg := New(in, out, 5, 100*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go agg.Run(ctx)

	values := []float64{18.0, 22.0, 26.0, 31.0, 19.0}
	wantMeans := []float64{18.0, 20.0, 22.0, 24.25, 23.2}

	for _, v := range values {
		require.NoError(t, in.Send(sensor.Reading{Value: v, Timestamp: time.Now()}, 0))
	}

	for i, want := range wantMeans {
		s, ok := out.Receive(ctx)
		require.True(t, ok)
		require.InDelta(t, want, s.Mean, 1e-9, "summary %d", i+1)
		require.Equal(t, uint32(i+1), s.SampleCount)
	}
}

func TestAggregatorCountsIndependentOfDrops(t *testing.T) {
	in, err := pipe.New[sensor.Reading]("readings", 10)
	require.NoError(t, err)
	// Capacity 1 and no consumer: after the first summary the queue
	// stays full, so later summaries are dropped.
	out, err := pipe.New[Summary]("summaries", 1)
	require.NoError(t, err)

	agg := New(in, out, 5, 0, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go agg.Run(ctx)

	for i := 0; i < 4; i++ {
		require.NoError(t, in.Send(sensor.Reading{Value: 20.0}, 0))
	}

	require.Eventually(t, func() bool {
		return agg.Drops() == 3
	}, time.Second, time.Millisecond)

	// The one summary that made it through is the first; a consumer
	// arriving late still sees sends in FIFO order with no rewrites.
	s, ok := out.Receive(ctx)
	require.True(t, ok)
	require.Equal(t, uint32(1), s.SampleCount)
	require.InDelta(t, 20.0, s.Mean, 1e-9)

	// Sample counting kept running through the drops.
	require.NoError(t, in.Send(sensor.Reading{Value: 20.0}, 0))
	s, ok = out.Receive(ctx)
	require.True(t, ok)
	require.Equal(t, uint32(5), s.SampleCount)
}
