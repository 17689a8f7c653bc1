// thermopipe simulates an embedded thermal controller: a fixed
// four-stage, priority-ranked pipeline from sensor sampling through
// sliding-window smoothing to LED actuation, with live and recorded
// health views.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "thermopipe",
	Short: "Embedded-style thermal pipeline simulator",
	Long: `thermopipe runs a fixed-topology producer/consumer pipeline:
a simulated temperature sensor feeds a sliding-window aggregator whose
smoothed mean drives an LED pattern, with a health monitor alongside.

Configuration comes from THERMOPIPE_* environment variables.`,
}

func init() {
	rootCmd.AddCommand(runCmd, monitorCmd, replayCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
