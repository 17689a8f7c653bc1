// Package present maps smoothed temperatures onto LED patterns and
// drives the output device on pattern changes only.
package present

import (
	"context"
	"math"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/luki/thermopipe/internal/aggregate"
	"github.com/luki/thermopipe/internal/led"
	"github.com/luki/thermopipe/internal/pipe"
)

// Band boundaries of the classifier. Each boundary value belongs to
// the higher band.
const (
	solidThreshold     = 20.0
	fastBlinkThreshold = 25.0
	emergencyThreshold = 30.0
)

// Classify maps a mean temperature to its LED pattern.
func Classify(mean float64) led.Pattern {
	switch {
	case mean < solidThreshold:
		return led.SlowBlink
	case mean < fastBlinkThreshold:
		return led.Solid
	case mean < emergencyThreshold:
		return led.FastBlink
	default:
		return led.Emergency
	}
}

// Presenter consumes summaries and keeps the LED in the pattern
// matching the latest mean. The device is written only when the
// classified pattern differs from the one already shown; a stable
// trend costs no hardware writes.
type Presenter struct {
	in     *pipe.Queue[aggregate.Summary]
	driver led.Driver
	log    *zap.Logger

	// OnSummary, if set, observes every consumed summary with its
	// classified pattern. It runs on the presenter goroutine.
	OnSummary func(s aggregate.Summary, p led.Pattern)

	current  led.Pattern // owned by Run, starts at led.Off
	writes   atomic.Uint64
	meanBits atomic.Uint64
	samples  atomic.Uint32
	pattern  atomic.Int32
}

// New creates the presentation stage.
func New(in *pipe.Queue[aggregate.Summary], driver led.Driver, log *zap.Logger) *Presenter {
	return &Presenter{in: in, driver: driver, log: log}
}

// Run consumes summaries until ctx is cancelled. The blocking receive
// is the stage's only suspension point.
func (p *Presenter) Run(ctx context.Context) {
	p.log.Info("presenter started")

	for {
		s, ok := p.in.Receive(ctx)
		if !ok {
			return
		}

		pat := Classify(s.Mean)
		if pat != p.current {
			p.driver.SetPattern(pat)
			p.current = pat
			p.writes.Add(1)
			p.log.Info("pattern changed",
				zap.Stringer("pattern", pat),
				zap.Float64("mean", s.Mean))
		}

		p.meanBits.Store(math.Float64bits(s.Mean))
		p.samples.Store(s.SampleCount)
		p.pattern.Store(int32(pat))

		if p.OnSummary != nil {
			p.OnSummary(s, pat)
		}
	}
}

// Latest returns the most recently consumed summary and the active
// pattern. Before the first summary it reports zeros and led.Off.
func (p *Presenter) Latest() (aggregate.Summary, led.Pattern) {
	s := aggregate.Summary{
		Mean:        math.Float64frombits(p.meanBits.Load()),
		SampleCount: p.samples.Load(),
	}
	return s, led.Pattern(p.pattern.Load())
}

// Writes returns how many times the device has been written.
func (p *Presenter) Writes() uint64 { return p.writes.Load() }
