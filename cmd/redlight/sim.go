package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/redlight/internal/core"
	"github.com/vovakirdan/redlight/internal/games/redlight"
	"github.com/vovakirdan/redlight/internal/registry"
	"github.com/vovakirdan/redlight/internal/session"
	"github.com/vovakirdan/redlight/internal/storage"
)

var (
	flagSimConfig      string
	flagSimDifficulty  string
	flagSimSource      string
	flagSimScript      string
	flagSimDuration    time.Duration
	flagSimRecord      bool
	flagSimAutoRestart bool
	flagSimBurst       float64
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless session in virtual time",
	Long: `Drive a session without a terminal UI. Ticks are spaced 1000/--fps
milliseconds apart in virtual time, so a long run finishes instantly.
Transitions are logged to stderr and a summary is printed at the end.

Without --auto-restart the run stops at the first elimination. A script
source runs until its last segment unless --duration is given.

Examples:
  redlight sim
  redlight sim --source noise --burst 0.1 --duration 5m --auto-restart
  redlight sim --source script --script ./freeze.yaml --record
  redlight sim --seed 42 --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	simCmd.Flags().StringVar(&flagSimSource, "source", "noise", "Motion source ID")
	simCmd.Flags().StringVar(&flagSimScript, "script", "", "Motion script YAML (for --source script)")
	simCmd.Flags().DurationVar(&flagSimDuration, "duration", time.Minute, "Virtual run length")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Record the run to the trace database")
	simCmd.Flags().BoolVar(&flagSimAutoRestart, "auto-restart", false, "Restart immediately after each elimination")
	simCmd.Flags().Float64Var(&flagSimBurst, "burst", 0, "Burst probability per sample for the noise source")
}

// scriptEnd is implemented by sources with a natural end.
type scriptEnd interface {
	EndMS() int64
}

func runSim(cmd *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig(flagSimConfig, flagSimDifficulty)
	if err != nil {
		fail("%v", err)
	}

	seed := resolveSeed()
	src, err := createSource(flagSimSource, registry.Options{
		Seed:       seed,
		ScriptPath: flagSimScript,
		BurstProb:  flagSimBurst,
	})
	if err != nil {
		fail("%v", err)
	}

	durationMS := flagSimDuration.Milliseconds()
	if se, ok := src.(scriptEnd); ok && !cmd.Flags().Changed("duration") {
		durationMS = se.EndMS()
	}

	logger := newLogger(os.Stderr, "sim")
	tickMS := core.RuntimeConfig{TickRate: flagFPS}.TickMS()

	var store *storage.Store
	var rec *session.Recorder
	if flagSimRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fail("opening trace database: %v", err)
		}
		defer store.Close()
		rec, err = session.NewRecorder(store, src.Name(), seed, tickMS, gameCfg, logger)
		if err != nil {
			fail("%v", err)
		}
	}

	sess := session.New(session.Options{
		Config:   gameCfg,
		Seed:     seed,
		Source:   src,
		Recorder: rec,
		Logger:   logger,
	})

	logger.Info("simulation started",
		"source", src.Name(), "seed", seed, "tick_ms", tickMS, "duration_ms", durationMS)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sum, runErr := session.RunHeadless(ctx, sess, session.HeadlessOptions{
		TickMS:      tickMS,
		DurationMS:  durationMS,
		AutoRestart: flagSimAutoRestart,
	})

	outcome := "completed"
	switch {
	case errors.Is(runErr, context.Canceled):
		outcome = "interrupted"
	case runErr != nil:
		fail("%v", runErr)
	case sum.LastState == redlight.StateDead:
		outcome = "eliminated"
	}
	if err := sess.Close(outcome); err != nil {
		logger.Warn("could not finish trace", "error", err)
	}

	printSummary(sum, outcome)
	if rec != nil {
		fmt.Printf("Recorded as trace %d\n", rec.TraceID())
	}
}

func printSummary(sum session.Summary, outcome string) {
	fmt.Printf("Outcome:     %s\n", outcome)
	fmt.Printf("Ticks:       %d\n", sum.Ticks)
	fmt.Printf("Transitions: %d\n", sum.Transitions)
	fmt.Printf("Deaths:      %d\n", sum.Deaths)
	fmt.Printf("Restarts:    %d\n", sum.Restarts)
	fmt.Printf("Best level:  %d\n", sum.MaxLevel)
	fmt.Printf("Best cycle:  %d\n", sum.MaxCycle)
	fmt.Printf("Final state: %s\n", sum.LastState)
}
