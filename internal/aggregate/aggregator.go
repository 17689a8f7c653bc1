// Package aggregate implements the smoothing stage: it folds the
// unbounded reading stream into a sliding-window mean.
package aggregate

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/luki/thermopipe/internal/pipe"
	"github.com/luki/thermopipe/internal/sensor"
	"github.com/luki/thermopipe/internal/window"
)

// Summary is one smoothed data point handed to the presenter.
type Summary struct {
	Mean        float64
	SampleCount uint32 // total readings aggregated, wraps at the uint32 limit
}

// Aggregator consumes readings, maintains the sliding window and emits
// one Summary per reading. A summary that cannot be queued within the
// send timeout is dropped; the next one supersedes it.
type Aggregator struct {
	in      *pipe.Queue[sensor.Reading]
	out     *pipe.Queue[Summary]
	win     *window.Window
	timeout time.Duration
	log     *zap.Logger

	drops atomic.Uint64
}

// New creates the smoothing stage with a window over the last
// windowSize readings.
func New(in *pipe.Queue[sensor.Reading], out *pipe.Queue[Summary], windowSize int, timeout time.Duration, log *zap.Logger) *Aggregator {
	return &Aggregator{
		in:      in,
		out:     out,
		win:     window.New(windowSize),
		timeout: timeout,
		log:     log,
	}
}

// Run processes readings until ctx is cancelled. The blocking receive
// is the stage's only suspension point besides the bounded send.
func (a *Aggregator) Run(ctx context.Context) {
	a.log.Info("aggregator started", zap.Int("window", a.win.Size()))

	for {
		r, ok := a.in.Receive(ctx)
		if !ok {
			return
		}

		a.win.Push(r.Value)
		s := Summary{Mean: a.win.Mean(), SampleCount: a.win.Samples()}

		if err := a.out.Send(s, a.timeout); err != nil {
			a.drops.Add(1)
			a.log.Warn("summary queue full, summary lost",
				zap.Float64("mean", s.Mean),
				zap.Uint32("samples", s.SampleCount))
			continue
		}

		a.log.Debug("summary",
			zap.Float64("mean", s.Mean),
			zap.Uint32("samples", s.SampleCount))
	}
}

// Drops returns how many summaries were lost to a full queue.
func (a *Aggregator) Drops() uint64 { return a.drops.Load() }
