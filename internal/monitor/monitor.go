// Package monitor implements pipeline health introspection: a periodic
// logging sampler for headless runs and a live dashboard TUI. Both are
// advisory and read only counters and queue depths; neither can block
// the data path.
package monitor

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"

	"github.com/luki/thermopipe/internal/led"
)

// Snapshot is one point-in-time health sample.
type Snapshot struct {
	Time   time.Time
	Uptime time.Duration

	ReadingsLen  int
	ReadingsCap  int
	SummariesLen int
	SummariesCap int

	Readings         uint64 // total readings taken by the source
	DroppedReadings  uint64
	DroppedSummaries uint64
	DeviceWrites     uint64

	Mean        float64
	SampleCount uint32
	Pattern     led.Pattern

	FreeMemory uint64 // bytes available to the host
	Goroutines int
}

// HealthSource produces pipeline-side health snapshots; implemented by
// the pipeline.
type HealthSource interface {
	Health() Snapshot
}

// sample extends a pipeline snapshot with host-side figures.
func sample(src HealthSource) Snapshot {
	snap := src.Health()
	snap.Time = time.Now()
	snap.Goroutines = runtime.NumGoroutine()
	if vm, err := mem.VirtualMemory(); err == nil {
		snap.FreeMemory = vm.Available
	}
	return snap
}

// Sampler logs a health snapshot at a fixed period.
type Sampler struct {
	src      HealthSource
	interval time.Duration
	log      *zap.Logger
}

// NewSampler creates the health sampling stage.
func NewSampler(src HealthSource, interval time.Duration, log *zap.Logger) *Sampler {
	return &Sampler{src: src, interval: interval, log: log}
}

// Run logs snapshots until ctx is cancelled. Its only suspension point
// is the interval tick.
func (s *Sampler) Run(ctx context.Context) {
	s.log.Info("monitor started", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		snap := sample(s.src)
		s.log.Info("health",
			zap.Int("readings_queued", snap.ReadingsLen),
			zap.Int("summaries_queued", snap.SummariesLen),
			zap.Uint64("readings_total", snap.Readings),
			zap.Uint64("readings_dropped", snap.DroppedReadings),
			zap.Uint64("summaries_dropped", snap.DroppedSummaries),
			zap.Uint64("device_writes", snap.DeviceWrites),
			zap.Float64("mean", snap.Mean),
			zap.Stringer("pattern", snap.Pattern),
			zap.Uint64("free_memory", snap.FreeMemory),
			zap.Int("goroutines", snap.Goroutines),
		)
	}
}
