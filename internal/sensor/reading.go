// Package sensor defines the temperature reading, the probe
// abstraction over the physical sensor, and the sampling stage that
// feeds readings into the pipeline.
package sensor

import "time"

// Reading is a single temperature measurement. It is immutable once
// created: the source stamps it and downstream stages only read it.
type Reading struct {
	Value     float64   // degrees Celsius
	Timestamp time.Time // capture time, carries the monotonic clock
}
