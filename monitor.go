package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luki/thermopipe/internal/config"
	"github.com/luki/thermopipe/internal/led"
	"github.com/luki/thermopipe/internal/monitor"
	"github.com/luki/thermopipe/internal/pipeline"
	"github.com/luki/thermopipe/internal/sensor"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Run the pipeline with a live dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Stdout belongs to the dashboard; stage logs are discarded.
		log := zap.NewNop()

		probe := sensor.NewSimProbe(time.Now().UnixNano())
		driver := led.NewLogDriver(log)

		p, err := pipeline.New(cfg, log, probe, driver)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan struct{})
		go func() {
			p.Run(ctx)
			close(done)
		}()

		err = monitor.RunTUI(p)
		cancel()
		<-done
		return err
	},
}
