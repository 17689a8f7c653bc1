package sensor

import "math/rand"

// Probe reads one raw temperature value from the underlying sensor.
// A hardware build replaces this with a real driver read.
type Probe interface {
	Read() (float64, error)
}

// SimProbe simulates a thermal sensor producing values in the
// 15.0-35.0 range, matching the demo band of the hardware build.
type SimProbe struct {
	rng *rand.Rand
}

// NewSimProbe creates a simulated probe with its own random source.
func NewSimProbe(seed int64) *SimProbe {
	return &SimProbe{rng: rand.New(rand.NewSource(seed))}
}

// Read returns a simulated temperature. It never fails.
func (p *SimProbe) Read() (float64, error) {
	return 15.0 + p.rng.Float64()*20.0, nil
}
