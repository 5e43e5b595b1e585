package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultGameConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	cfg, err := ParseGame(DefaultYAML())
	if err != nil {
		t.Fatalf("ParseGame(embedded) failed: %v", err)
	}
	if cfg != DefaultGameConfig() {
		t.Errorf("embedded YAML diverges from DefaultGameConfig:\n got %+v\nwant %+v", cfg, DefaultGameConfig())
	}
}

func TestParseGamePartialOverride(t *testing.T) {
	data := []byte("timers:\n  red_grace_ms: 1000\n")
	cfg, err := ParseGame(data)
	if err != nil {
		t.Fatalf("ParseGame failed: %v", err)
	}
	if cfg.Timers.RedGraceMS != 1000 {
		t.Errorf("RedGraceMS = %d, want 1000", cfg.Timers.RedGraceMS)
	}
	if cfg.Timers.IdleDeathMS != 3600 {
		t.Errorf("unspecified IdleDeathMS should keep default, got %d", cfg.Timers.IdleDeathMS)
	}
	if !cfg.Difficulty.ExpiryOverrides {
		t.Error("unspecified expiry_overrides should keep default true")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
	}{
		{"zero window", func(c *GameConfig) { c.Motion.SmoothingWindow = 0 }},
		{"negative threshold", func(c *GameConfig) { c.Motion.GreenMoveThreshold = -0.1 }},
		{"warning after death", func(c *GameConfig) { c.Timers.IdleWarningMS = 4000 }},
		{"inverted green range", func(c *GameConfig) { c.Phases.Green = Range{Min: 5000, Max: 4000} }},
		{"empty red range", func(c *GameConfig) { c.Phases.Red = Range{} }},
		{"zero cycles per level", func(c *GameConfig) { c.Difficulty.CyclesPerLevel = 0 }},
		{"unknown mode", func(c *GameConfig) { c.Difficulty.ThresholdMode = "dynamic" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGameConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadGameCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("motion:\n  smoothing_window: 8\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGame(path)
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	if cfg.Motion.SmoothingWindow != 8 {
		t.Errorf("SmoothingWindow = %d, want 8", cfg.Motion.SmoothingWindow)
	}
}

func TestLoadGameCustomPathErrors(t *testing.T) {
	if _, err := LoadGame(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("timers:\n  idle_warning_ms: 9000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGame(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultGameConfig()
	ApplyPreset(&cfg, DifficultyHard)

	data, err := MarshalGame(cfg)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ParseGame(data)
	if err != nil {
		t.Fatal(err)
	}
	if got != cfg {
		t.Errorf("round trip mismatch: got %+v want %+v", got, cfg)
	}
}

func TestApplyPreset(t *testing.T) {
	for _, preset := range []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed} {
		cfg := DefaultGameConfig()
		ApplyPreset(&cfg, preset)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s produced invalid config: %v", preset, err)
		}
	}

	cfg := DefaultGameConfig()
	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.ThresholdMode != ThresholdStatic {
		t.Errorf("fixed preset should use static threshold, got %q", cfg.Difficulty.ThresholdMode)
	}

	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset should reject unknown preset")
	}
}
