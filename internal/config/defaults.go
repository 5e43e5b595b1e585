package config

import (
	_ "embed"
)

//go:embed defaults/redlight.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the default game configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Motion: MotionConfig{
			SmoothingWindow:      5,
			GreenMoveThreshold:   0.004,
			RedMoveThresholdBase: 0.005,
			RedMoveThresholdStep: 0.003,
		},
		Timers: TimersConfig{
			RedGraceMS:    650,
			IdleWarningMS: 1800,
			IdleDeathMS:   3600,
		},
		Phases: PhasesConfig{
			Green: Range{Min: 2600, Max: 4200},
			Red:   Range{Min: 1700, Max: 2900},
		},
		Difficulty: DifficultyConfig{
			CyclesPerLevel:  3,
			ThresholdMode:   ThresholdLive,
			ExpiryOverrides: true,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultGameYAML
}
