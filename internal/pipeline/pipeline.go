// Package pipeline wires the stages together: it creates the bounded
// queues, initializes the output device and supervises the long-running
// stage loops.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/luki/thermopipe/internal/aggregate"
	"github.com/luki/thermopipe/internal/config"
	"github.com/luki/thermopipe/internal/led"
	"github.com/luki/thermopipe/internal/monitor"
	"github.com/luki/thermopipe/internal/pipe"
	"github.com/luki/thermopipe/internal/present"
	"github.com/luki/thermopipe/internal/sensor"
	"github.com/luki/thermopipe/internal/telemetry"
)

// Priority documents the scheduling rank a stage would get on a
// fixed-priority RTOS, highest first. The Go runtime schedules
// goroutines itself; what the ranks protect is enforced structurally
// instead: the source never waits beyond its send timeout, and the
// monitor only reads counters and queue depths.
type Priority int

const (
	PrioritySource     Priority = 5
	PriorityAggregator Priority = 4
	PriorityPresenter  Priority = 3
	PriorityMonitor    Priority = 1
)

// Pipeline owns the queues and stages of one pipeline instance. The
// queues are created once at startup and never resized or reassigned.
type Pipeline struct {
	log *zap.Logger

	readings  *pipe.Queue[sensor.Reading]
	summaries *pipe.Queue[aggregate.Summary]

	source     *sensor.Source
	aggregator *aggregate.Aggregator
	presenter  *present.Presenter
	sampler    *monitor.Sampler

	store *telemetry.Store
	start time.Time // set in New, read-only once the pipeline escapes
}

// New builds a fully wired pipeline. Queue creation and output device
// initialization failures are fatal: the pipeline must not start
// partially wired.
func New(cfg *config.Config, log *zap.Logger, probe sensor.Probe, driver led.Driver) (*Pipeline, error) {
	readings, err := pipe.New[sensor.Reading]("readings", cfg.Pipeline.ReadingCapacity)
	if err != nil {
		return nil, fmt.Errorf("create reading queue: %w", err)
	}
	summaries, err := pipe.New[aggregate.Summary]("summaries", cfg.Pipeline.SummaryCapacity)
	if err != nil {
		return nil, fmt.Errorf("create summary queue: %w", err)
	}

	if err := driver.Init(led.Config{Pin: cfg.LED.Pin, ActiveHigh: cfg.LED.ActiveHigh}); err != nil {
		return nil, fmt.Errorf("init output device: %w", err)
	}

	p := &Pipeline{
		log:       log,
		readings:  readings,
		summaries: summaries,
		start:     time.Now(),
	}

	pc := cfg.Pipeline
	p.source = sensor.NewSource(probe, readings, pc.SampleInterval, pc.SendTimeout, log.Named("source"))
	p.aggregator = aggregate.New(readings, summaries, pc.WindowSize, pc.SendTimeout, log.Named("aggregator"))
	p.presenter = present.New(summaries, driver, log.Named("presenter"))
	p.sampler = monitor.NewSampler(p, pc.MonitorInterval, log.Named("monitor"))

	if cfg.Telemetry.Record {
		store, err := telemetry.New(cfg.Telemetry.Dir)
		if err != nil {
			return nil, fmt.Errorf("open telemetry store: %w", err)
		}
		p.store = store
		p.presenter.OnSummary = func(s aggregate.Summary, pat led.Pattern) {
			rec := telemetry.Record{Time: time.Now(), Mean: s.Mean, Samples: s.SampleCount, Pattern: pat}
			if err := store.Write(rec); err != nil {
				log.Warn("telemetry write failed", zap.Error(err))
			}
		}
		log.Info("recording telemetry", zap.String("dir", store.Dir()))
	}

	return p, nil
}

// Run starts all stages and blocks until ctx is cancelled and every
// stage loop has returned.
func (p *Pipeline) Run(ctx context.Context) {
	stages := []struct {
		name     string
		priority Priority
		run      func(context.Context)
	}{
		{"source", PrioritySource, p.source.Run},
		{"aggregator", PriorityAggregator, p.aggregator.Run},
		{"presenter", PriorityPresenter, p.presenter.Run},
		{"monitor", PriorityMonitor, p.sampler.Run},
	}

	var wg sync.WaitGroup
	for _, st := range stages {
		p.log.Info("starting stage",
			zap.String("stage", st.name),
			zap.Int("priority", int(st.priority)))
		wg.Add(1)
		go func(run func(context.Context)) {
			defer wg.Done()
			run(ctx)
		}(st.run)
	}
	wg.Wait()

	if p.store != nil {
		p.store.Close()
	}
	p.log.Info("pipeline stopped")
}

// Health returns a point-in-time health snapshot of the data path.
func (p *Pipeline) Health() monitor.Snapshot {
	s, pat := p.presenter.Latest()
	return monitor.Snapshot{
		Uptime:           time.Since(p.start),
		ReadingsLen:      p.readings.Len(),
		ReadingsCap:      p.readings.Cap(),
		SummariesLen:     p.summaries.Len(),
		SummariesCap:     p.summaries.Cap(),
		Readings:         p.source.Readings(),
		DroppedReadings:  p.source.Drops(),
		DroppedSummaries: p.aggregator.Drops(),
		DeviceWrites:     p.presenter.Writes(),
		Mean:             s.Mean,
		SampleCount:      s.SampleCount,
		Pattern:          pat,
	}
}
