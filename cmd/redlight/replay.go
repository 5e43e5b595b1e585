package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/redlight/internal/session"
	"github.com/vovakirdan/redlight/internal/storage"
)

var (
	flagReplayQuiet bool
	flagReplayShow  int
)

var replayCmd = &cobra.Command{
	Use:   "replay <trace-id>",
	Short: "Re-run a recorded trace",
	Long: `Feed the raw samples of a recorded trace through a fresh session with the
config and seed it was recorded with, and compare every tick's state with
the recording. Exits with status 1 when the replay diverges.

Examples:
  redlight replay 12
  redlight replay 12 --quiet
  redlight replay 12 --show 20`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayQuiet, "quiet", false, "Do not log transitions")
	replayCmd.Flags().IntVar(&flagReplayShow, "show", 5, "Number of divergent ticks to print")
}

func runReplay(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fail("invalid trace ID %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening trace database: %v", err)
	}
	defer store.Close()

	tr, samples, err := store.LoadTrace(id)
	if errors.Is(err, storage.ErrTraceNotFound) {
		fail("trace %d not found\nRun 'redlight traces' to list recorded traces.", id)
	}
	if err != nil {
		fail("loading trace: %v", err)
	}

	var logger *log.Logger
	if flagReplayQuiet {
		logger = log.New(io.Discard)
	} else {
		logger = newLogger(os.Stderr, "replay")
	}

	report, err := session.Replay(tr, samples, logger)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Trace %d (%s, seed %d, recorded %s)\n",
		tr.ID, tr.Source, tr.Seed, tr.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("Samples:     %d\n", report.Samples)
	fmt.Printf("Transitions: %d\n", len(report.Transitions))
	fmt.Printf("Deaths:      %d (recorded %d)\n", report.Summary.Deaths, tr.Deaths)

	if report.Matches() {
		fmt.Println("Replay matches the recording.")
		return
	}

	fmt.Printf("Replay diverged on %d ticks:\n", len(report.Mismatches))
	for i, mm := range report.Mismatches {
		if i >= flagReplayShow {
			fmt.Printf("  ... %d more\n", len(report.Mismatches)-i)
			break
		}
		fmt.Printf("  seq %-6d %8dms  recorded %-8s replayed %s\n", mm.Seq, mm.NowMS, mm.Recorded, mm.Replayed)
	}
	os.Exit(1)
}
