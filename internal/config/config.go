// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Pipeline  PipelineConfig
	LED       LEDConfig
	Logging   LogConfig
	Telemetry TelemetryConfig
}

// PipelineConfig holds the stage and queue parameters.
type PipelineConfig struct {
	SampleInterval  time.Duration `envconfig:"SAMPLE_INTERVAL" default:"1s"`
	SendTimeout     time.Duration `envconfig:"SEND_TIMEOUT" default:"100ms"`
	ReadingCapacity int           `envconfig:"READING_CAPACITY" default:"10"`
	SummaryCapacity int           `envconfig:"SUMMARY_CAPACITY" default:"5"`
	WindowSize      int           `envconfig:"WINDOW_SIZE" default:"5"`
	MonitorInterval time.Duration `envconfig:"MONITOR_INTERVAL" default:"10s"`
}

// LEDConfig holds the output device wiring.
type LEDConfig struct {
	Pin        int  `envconfig:"PIN" default:"2"`
	ActiveHigh bool `envconfig:"ACTIVE_HIGH" default:"true"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LEVEL" default:"info"`
	Development bool   `envconfig:"DEV" default:"false"`
}

// TelemetryConfig holds the summary recording settings.
type TelemetryConfig struct {
	Record bool   `envconfig:"RECORD" default:"false"`
	Dir    string `envconfig:"DIR" default:""`
}

// Load reads configuration from THERMOPIPE_* environment variables,
// falling back to the struct defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("thermopipe", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	p := c.Pipeline
	if p.SampleInterval <= 0 {
		return fmt.Errorf("sample interval must be positive, got %s", p.SampleInterval)
	}
	if p.WindowSize <= 0 {
		return fmt.Errorf("window size must be positive, got %d", p.WindowSize)
	}
	if p.ReadingCapacity <= 0 || p.SummaryCapacity <= 0 {
		return fmt.Errorf("queue capacities must be positive, got %d and %d",
			p.ReadingCapacity, p.SummaryCapacity)
	}
	return nil
}
