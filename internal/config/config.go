// Package config provides YAML-based game configuration loading and
// difficulty presets for the Red Light / Green Light game.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid game config")

// Threshold modes for the red-phase movement threshold.
const (
	ThresholdLive   = "live"   // derived from the current level on every read
	ThresholdStatic = "static" // computed once from the starting level
)

// GameConfig contains all configuration for one game session.
type GameConfig struct {
	Motion     MotionConfig     `yaml:"motion"`
	Timers     TimersConfig     `yaml:"timers"`
	Phases     PhasesConfig     `yaml:"phases"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// MotionConfig defines smoothing and movement thresholds.
type MotionConfig struct {
	SmoothingWindow      int     `yaml:"smoothing_window"`
	GreenMoveThreshold   float64 `yaml:"green_move_threshold"`
	RedMoveThresholdBase float64 `yaml:"red_move_threshold_base"`
	RedMoveThresholdStep float64 `yaml:"red_move_threshold_step"`
}

// TimersConfig defines grace and idle limits in milliseconds.
type TimersConfig struct {
	RedGraceMS    int64 `yaml:"red_grace_ms"`
	IdleWarningMS int64 `yaml:"idle_warning_ms"`
	IdleDeathMS   int64 `yaml:"idle_death_ms"`
}

// PhasesConfig defines the ranges phase durations are drawn from.
type PhasesConfig struct {
	Green Range `yaml:"green_range"`
	Red   Range `yaml:"red_range"`
}

// Range is an inclusive millisecond range.
type Range struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v int64) bool {
	return v >= r.Min && v <= r.Max
}

// DifficultyConfig defines level pacing and tick resolution policy.
type DifficultyConfig struct {
	CyclesPerLevel int    `yaml:"cycles_per_level"`
	ThresholdMode  string `yaml:"threshold_mode"` // "live" or "static"
	// ExpiryOverrides lets a phase expiry replace an idle or movement
	// transition resolved earlier in the same tick.
	ExpiryOverrides bool `yaml:"expiry_overrides"`
}

// Validate checks the config for values the game cannot run with.
func (c GameConfig) Validate() error {
	switch {
	case c.Motion.SmoothingWindow < 1:
		return fmt.Errorf("%w: smoothing_window must be >= 1, got %d", ErrInvalidConfig, c.Motion.SmoothingWindow)
	case c.Motion.GreenMoveThreshold < 0:
		return fmt.Errorf("%w: green_move_threshold must be >= 0", ErrInvalidConfig)
	case c.Motion.RedMoveThresholdBase < 0 || c.Motion.RedMoveThresholdStep < 0:
		return fmt.Errorf("%w: red move thresholds must be >= 0", ErrInvalidConfig)
	case c.Timers.RedGraceMS < 0:
		return fmt.Errorf("%w: red_grace_ms must be >= 0", ErrInvalidConfig)
	case c.Timers.IdleWarningMS <= 0 || c.Timers.IdleWarningMS >= c.Timers.IdleDeathMS:
		return fmt.Errorf("%w: need 0 < idle_warning_ms (%d) < idle_death_ms (%d)",
			ErrInvalidConfig, c.Timers.IdleWarningMS, c.Timers.IdleDeathMS)
	case c.Phases.Green.Min <= 0 || c.Phases.Green.Min > c.Phases.Green.Max:
		return fmt.Errorf("%w: green_range [%d,%d] is empty", ErrInvalidConfig, c.Phases.Green.Min, c.Phases.Green.Max)
	case c.Phases.Red.Min <= 0 || c.Phases.Red.Min > c.Phases.Red.Max:
		return fmt.Errorf("%w: red_range [%d,%d] is empty", ErrInvalidConfig, c.Phases.Red.Min, c.Phases.Red.Max)
	case c.Difficulty.CyclesPerLevel < 1:
		return fmt.Errorf("%w: cycles_per_level must be >= 1", ErrInvalidConfig)
	}

	switch c.Difficulty.ThresholdMode {
	case ThresholdLive, ThresholdStatic:
	default:
		return fmt.Errorf("%w: unknown threshold_mode %q", ErrInvalidConfig, c.Difficulty.ThresholdMode)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Empty means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return "", nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Timers.RedGraceMS = 900
		cfg.Timers.IdleWarningMS = 2400
		cfg.Timers.IdleDeathMS = 4800
		cfg.Motion.RedMoveThresholdStep = 0.002
	case DifficultyHard:
		cfg.Timers.RedGraceMS = 450
		cfg.Timers.IdleWarningMS = 1400
		cfg.Timers.IdleDeathMS = 2800
		cfg.Motion.RedMoveThresholdStep = 0.004
		cfg.Difficulty.CyclesPerLevel = 2
	case DifficultyFixed:
		cfg.Difficulty.ThresholdMode = ThresholdStatic
	}
}
