package main

import (
	"github.com/spf13/cobra"

	"github.com/luki/thermopipe/internal/viewer"
)

var replayDir string

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Browse recorded telemetry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return viewer.Run(replayDir)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayDir, "dir", "",
		"telemetry directory (default ~/.thermopipe)")
}
