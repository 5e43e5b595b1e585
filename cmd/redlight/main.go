// redlight is a Red Light / Green Light reaction game driven by a motion signal.
//
// Usage:
//
//	redlight play               - Play in the terminal (keys stand in for motion)
//	redlight sim                - Run a headless session over a scripted or noisy source
//	redlight replay <trace-id>  - Re-run a recorded trace and check for divergence
//	redlight traces             - List recorded traces
//	redlight sources            - List motion sources
//	redlight serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 30)
//	--seed <value>  - Set RNG seed for reproducible phase durations
//	--db <path>     - Set trace database path (default: ~/.redlight/traces.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register the built-in motion sources
	_ "github.com/vovakirdan/redlight/internal/motion"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "redlight",
	Short: "Red Light / Green Light - stay still when the light turns red",
	Long: `Red Light / Green Light is a reaction game driven by a motion signal.
Keep moving while the light is green, freeze when it turns red.
Idling too long on green or moving on red eliminates you.

Available commands:
  play     - Play interactively in the terminal
  sim      - Headless run in virtual time
  replay   - Re-run a recorded trace
  traces   - List recorded traces
  sources  - List motion sources
  serve    - Start SSH server for remote play

Examples:
  redlight play
  redlight play --difficulty hard
  redlight sim --source script --script ./configs/scripts/freeze.yaml
  redlight replay 12
  redlight serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (samples per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.redlight/traces.db", "Path to trace database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(tracesCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(serveCmd)
}
