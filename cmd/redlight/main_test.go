package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/redlight/internal/config"
	"github.com/vovakirdan/redlight/internal/registry"
)

func TestLoadGameConfigPresets(t *testing.T) {
	cfg, err := loadGameConfig("", "fixed")
	if err != nil {
		t.Fatalf("loadGameConfig() failed: %v", err)
	}
	if cfg.Difficulty.ThresholdMode != config.ThresholdStatic {
		t.Errorf("fixed preset should select static thresholds, got %q", cfg.Difficulty.ThresholdMode)
	}

	if _, err := loadGameConfig("", "nightmare"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}

func TestLoadGameConfigCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redlight.yaml")
	if err := os.WriteFile(path, []byte("timers:\n  red_grace_ms: 1000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadGameConfig(path, "")
	if err != nil {
		t.Fatalf("loadGameConfig() failed: %v", err)
	}
	if cfg.Timers.RedGraceMS != 1000 {
		t.Errorf("expected grace 1000, got %d", cfg.Timers.RedGraceMS)
	}
}

func TestCreateSourceUnknown(t *testing.T) {
	_, err := createSource("webcam", registry.Options{})
	if !errors.Is(err, registry.ErrUnknownSource) {
		t.Errorf("expected ErrUnknownSource, got %v", err)
	}
	if _, err := createSource("noise", registry.Options{Seed: 1}); err != nil {
		t.Errorf("noise source should be registered: %v", err)
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23235":       "23235",
		"0.0.0.0:2222": "2222",
		"[::1]:2200":   "2200",
		"localhost":    "localhost",
	}
	for addr, want := range tests {
		if got := portOf(addr); got != want {
			t.Errorf("portOf(%q) = %q, want %q", addr, got, want)
		}
	}
}
