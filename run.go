package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/luki/thermopipe/internal/config"
	"github.com/luki/thermopipe/internal/led"
	"github.com/luki/thermopipe/internal/logging"
	"github.com/luki/thermopipe/internal/pipeline"
	"github.com/luki/thermopipe/internal/sensor"
)

var recordFlag bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pipeline headless with structured logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if recordFlag {
			cfg.Telemetry.Record = true
		}

		log, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
		if err != nil {
			return err
		}
		defer log.Sync()

		probe := sensor.NewSimProbe(time.Now().UnixNano())
		driver := led.NewLogDriver(log.Named("led"))

		p, err := pipeline.New(cfg, log, probe, driver)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		p.Run(ctx)
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&recordFlag, "record", false,
		"record summaries to the telemetry store")
}
