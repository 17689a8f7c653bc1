package sensor

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/luki/thermopipe/internal/pipe"
)

// Source samples the probe at a fixed interval and forwards readings
// into the pipeline. It never waits on a slow consumer beyond the send
// timeout: on a full queue the reading is dropped and counted, and the
// next sampling tick proceeds on schedule.
type Source struct {
	probe    Probe
	out      *pipe.Queue[Reading]
	interval time.Duration
	timeout  time.Duration
	log      *zap.Logger

	readings atomic.Uint64 // total readings taken, diagnostics only
	drops    atomic.Uint64
}

// NewSource creates the sampling stage.
func NewSource(probe Probe, out *pipe.Queue[Reading], interval, timeout time.Duration, log *zap.Logger) *Source {
	return &Source{
		probe:    probe,
		out:      out,
		interval: interval,
		timeout:  timeout,
		log:      log,
	}
}

// Run samples until ctx is cancelled. Its only suspension points are
// the interval tick and the bounded-timeout send.
func (s *Source) Run(ctx context.Context) {
	s.log.Info("source started", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		value, err := s.probe.Read()
		if err != nil {
			s.log.Warn("probe read failed", zap.Error(err))
			continue
		}

		n := s.readings.Add(1)
		r := Reading{Value: value, Timestamp: time.Now()}

		if err := s.out.Send(r, s.timeout); err != nil {
			s.drops.Add(1)
			s.log.Warn("reading queue full, reading lost",
				zap.Uint64("reading", n),
				zap.Float64("value", value))
			continue
		}

		s.log.Debug("reading", zap.Uint64("n", n), zap.Float64("value", value))
	}
}

// Readings returns the total number of readings taken.
func (s *Source) Readings() uint64 { return s.readings.Load() }

// Drops returns how many readings were lost to a full queue.
func (s *Source) Drops() uint64 { return s.drops.Load() }
