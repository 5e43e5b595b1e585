package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/redlight/internal/core"
	"github.com/vovakirdan/redlight/internal/platform/tui"
	"github.com/vovakirdan/redlight/internal/registry"
	"github.com/vovakirdan/redlight/internal/session"
	"github.com/vovakirdan/redlight/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSource     string
	flagScript     string
	flagLogFile    string
	flagNoRecord   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start an interactive session.

With the keyboard source, movement keys stand in for motion in front of a
camera: each press adds an impulse that fades over a few ticks.

Controls:
  Space/Arrows/WASD - Move
  R                 - Restart (after elimination)
  Ctrl+S            - Save a screenshot to ~/.redlight/screenshots
  ?                 - Toggle help
  Q/Esc/Ctrl+C      - Quit

Difficulty options:
  easy   - Longer grace and idle windows, slower threshold growth
  normal - Config values as loaded
  hard   - Shorter windows, faster levels
  fixed  - Red threshold stays at its level-1 value

Sessions are recorded to the trace database unless --no-record is given.

Examples:
  redlight play
  redlight play --difficulty hard
  redlight play --source noise --log-file /tmp/redlight.log
  redlight play --config ./my-redlight.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagSource, "source", "keyboard", "Motion source ID")
	playCmd.Flags().StringVar(&flagScript, "script", "", "Motion script YAML (for --source script)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write transition log to this file")
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record the session")
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig(flagConfig, flagDifficulty)
	if err != nil {
		fail("%v", err)
	}

	seed := resolveSeed()
	src, err := createSource(flagSource, registry.Options{Seed: seed, ScriptPath: flagScript})
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := openLogFile(flagLogFile)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}

	var store *storage.Store
	var rec *session.Recorder
	if !flagNoRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open trace database: %v\n", err)
			store = nil
		} else {
			rec, err = session.NewRecorder(store, src.Name(), seed, rt.TickMS(), gameCfg, logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: recording disabled: %v\n", err)
				rec = nil
			}
		}
	}

	sess := session.New(session.Options{
		Config:   gameCfg,
		Seed:     seed,
		Source:   src,
		Recorder: rec,
		Logger:   logger,
	})

	runErr := tui.Run(sess, rt)

	outcome := "quit"
	if runErr != nil {
		outcome = "interrupted"
	}
	if err := sess.Close(outcome); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not finish trace: %v\n", err)
	}
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}

	sum := sess.Summary()
	fmt.Printf("Ticks: %d  Deaths: %d  Best level: %d  Best cycle: %d\n",
		sum.Ticks, sum.Deaths, sum.MaxLevel, sum.MaxCycle)
	if rec != nil {
		fmt.Printf("Recorded as trace %d (redlight replay %d)\n", rec.TraceID(), rec.TraceID())
	}
}
