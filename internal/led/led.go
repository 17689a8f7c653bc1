// Package led defines the output device contract: the discrete display
// patterns and the driver that applies them.
package led

import (
	"fmt"

	"go.uber.org/zap"
)

// Pattern is a discrete LED display mode.
type Pattern int

const (
	Off Pattern = iota
	SlowBlink
	Solid
	FastBlink
	Emergency
)

// String returns the pattern name used in logs and telemetry rows.
func (p Pattern) String() string {
	switch p {
	case Off:
		return "off"
	case SlowBlink:
		return "slow-blink"
	case Solid:
		return "solid"
	case FastBlink:
		return "fast-blink"
	case Emergency:
		return "emergency"
	default:
		return fmt.Sprintf("pattern(%d)", int(p))
	}
}

// ParsePattern is the inverse of String.
func ParsePattern(s string) (Pattern, bool) {
	switch s {
	case "off":
		return Off, true
	case "slow-blink":
		return SlowBlink, true
	case "solid":
		return Solid, true
	case "fast-blink":
		return FastBlink, true
	case "emergency":
		return Emergency, true
	}
	return Off, false
}

// Config identifies the LED and its wiring polarity.
type Config struct {
	Pin        int
	ActiveHigh bool
}

// Driver abstracts the LED hardware. SetPattern is idempotent and
// assumed to succeed once Init has.
type Driver interface {
	Init(cfg Config) error
	SetPattern(p Pattern)
}

// LogDriver stands in for LED hardware on hosts without a GPIO: it
// logs every pattern change instead of toggling a pin.
type LogDriver struct {
	log *zap.Logger
	cfg Config
}

// NewLogDriver creates a logging driver.
func NewLogDriver(log *zap.Logger) *LogDriver {
	return &LogDriver{log: log}
}

// Init records the wiring config. A negative pin is rejected, mirroring
// how a real driver fails on an unusable GPIO.
func (d *LogDriver) Init(cfg Config) error {
	if cfg.Pin < 0 {
		return fmt.Errorf("led: invalid pin %d", cfg.Pin)
	}
	d.cfg = cfg
	d.log.Info("led initialized",
		zap.Int("pin", cfg.Pin),
		zap.Bool("active_high", cfg.ActiveHigh))
	return nil
}

// SetPattern logs the newly active pattern.
func (d *LogDriver) SetPattern(p Pattern) {
	d.log.Info("led pattern", zap.Stringer("pattern", p))
}
