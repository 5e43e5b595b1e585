package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/redlight/internal/config"
	"github.com/vovakirdan/redlight/internal/registry"
)

// loadGameConfig resolves the game config and applies a difficulty preset.
func loadGameConfig(path, difficulty string) (config.GameConfig, error) {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return config.GameConfig{}, err
	}
	cfg, err := config.LoadGame(path)
	if err != nil {
		return config.GameConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.GameConfig{}, err
	}
	return cfg, nil
}

// resolveSeed returns the --seed value, or a time-based seed when unset.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// createSource builds a motion source, hinting at the sources command for
// unknown IDs.
func createSource(id string, opts registry.Options) (registry.Source, error) {
	src, err := registry.Create(id, opts)
	if errors.Is(err, registry.ErrUnknownSource) {
		return nil, fmt.Errorf("%w\nRun 'redlight sources' to see available sources", err)
	}
	return src, err
}

// newLogger returns a logger writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// openLogFile opens path for appending. An empty path discards output.
func openLogFile(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return newLogger(f, "redlight"), func() { f.Close() }, nil
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
