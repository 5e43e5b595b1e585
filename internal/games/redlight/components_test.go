package redlight

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/redlight/internal/config"
	"github.com/vovakirdan/redlight/internal/core"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestMotionFilterPartialAndFullWindow(t *testing.T) {
	f := NewMotionFilter(DefaultWindow)

	tests := []struct {
		sample float64
		want   float64
	}{
		{0.01, 0.01},
		{0.03, 0.02},
		{0.02, 0.02},
		{0.00, 0.015},
		{0.04, 0.02},
		{0.10, 0.038}, // 0.01 evicted
		{0.00, 0.032}, // 0.03 evicted
	}

	for i, tt := range tests {
		if got := f.Push(tt.sample); !approx(got, tt.want) {
			t.Errorf("push #%d (%v) = %v, want %v", i+1, tt.sample, got, tt.want)
		}
	}
	if f.Len() != DefaultWindow {
		t.Errorf("Len() = %d, want %d", f.Len(), DefaultWindow)
	}
}

func TestMotionFilterReset(t *testing.T) {
	f := NewMotionFilter(3)
	f.Push(1)
	f.Push(1)
	f.Reset()

	if f.Len() != 0 || f.Value() != 0 {
		t.Errorf("after Reset: len=%d value=%v", f.Len(), f.Value())
	}
	if got := f.Push(0.5); got != 0.5 {
		t.Errorf("first push after Reset = %v, want 0.5", got)
	}
}

func TestMotionFilterMinimumSize(t *testing.T) {
	f := NewMotionFilter(0)
	f.Push(0.2)
	if got := f.Push(0.4); got != 0.4 {
		t.Errorf("size-1 filter should return the last sample, got %v", got)
	}
	if f.Size() != 1 {
		t.Errorf("Size() = %d, want 1", f.Size())
	}
}

func TestIdleTracker(t *testing.T) {
	var it IdleTracker

	if got := it.Update(100, true); got != 0 {
		t.Errorf("first still update = %d, want 0", got)
	}
	if !it.Active() || it.Since() != 100 {
		t.Errorf("marker = %d active=%v, want 100", it.Since(), it.Active())
	}
	if got := it.Update(900, true); got != 800 {
		t.Errorf("idle = %d, want 800", got)
	}
	if got := it.Duration(1000); got != 900 {
		t.Errorf("Duration(1000) = %d, want 900", got)
	}
	if got := it.Update(1000, false); got != 0 {
		t.Errorf("moving update = %d, want 0", got)
	}
	if it.Active() {
		t.Error("movement should clear the marker")
	}
	if got := it.Update(1200, true); got != 0 {
		t.Errorf("new idle window should start at 0, got %d", got)
	}
}

func TestDurationSamplerRange(t *testing.T) {
	cfg := config.DefaultGameConfig()
	s := NewDurationSampler(rand.New(rand.NewSource(5)), cfg.Phases.Green, cfg.Phases.Red)

	sawMin, sawMax := false, false
	for i := 0; i < 20000; i++ {
		g := s.SampleGreen()
		if !cfg.Phases.Green.Contains(g) {
			t.Fatalf("green sample %d outside %+v", g, cfg.Phases.Green)
		}
		r := s.SampleRed()
		if !cfg.Phases.Red.Contains(r) {
			t.Fatalf("red sample %d outside %+v", r, cfg.Phases.Red)
		}
		sawMin = sawMin || g == cfg.Phases.Green.Min
		sawMax = sawMax || g == cfg.Phases.Green.Max
	}
	if !sawMin || !sawMax {
		t.Errorf("range bounds should be reachable (min=%v max=%v)", sawMin, sawMax)
	}
}

func TestDurationSamplerDegenerateRange(t *testing.T) {
	fixed := config.Range{Min: 3000, Max: 3000}
	s := NewDurationSampler(rand.New(rand.NewSource(1)), fixed, fixed)
	if got := s.SampleGreen(); got != 3000 {
		t.Errorf("SampleGreen() = %d, want 3000", got)
	}
}

func TestProgressionLiveThreshold(t *testing.T) {
	cfg := config.DefaultGameConfig()
	p := NewProgression(cfg.Motion, cfg.Difficulty)

	want := []struct{ level, cycle int }{
		{1, 2}, {2, 3}, {2, 4}, {2, 5}, {3, 6}, {3, 7},
	}
	for i, w := range want {
		p.AdvanceCycle()
		if p.Level() != w.level || p.Cycle() != w.cycle {
			t.Errorf("advance #%d: level/cycle = %d/%d, want %d/%d", i+1, p.Level(), p.Cycle(), w.level, w.cycle)
		}
	}
	if got := p.RedThreshold(); !approx(got, 0.011) {
		t.Errorf("level 3 threshold = %v, want 0.011", got)
	}

	p.Reset()
	if p.Level() != 1 || p.Cycle() != 1 || !approx(p.RedThreshold(), 0.005) {
		t.Errorf("after Reset: level=%d cycle=%d threshold=%v", p.Level(), p.Cycle(), p.RedThreshold())
	}
}

func TestProgressionStaticThreshold(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Difficulty.ThresholdMode = config.ThresholdStatic
	p := NewProgression(cfg.Motion, cfg.Difficulty)

	for i := 0; i < 6; i++ {
		p.AdvanceCycle()
	}
	if p.Level() != 3 {
		t.Fatalf("level = %d, want 3", p.Level())
	}
	if got := p.RedThreshold(); !approx(got, 0.005) {
		t.Errorf("static threshold = %v, want 0.005", got)
	}
}

func TestStateNames(t *testing.T) {
	for _, s := range []State{StateGreen, StateWarning, StateRed, StateDead} {
		parsed, ok := ParseState(s.String())
		if !ok || parsed != s {
			t.Errorf("ParseState(%q) = %v, %v", s.String(), parsed, ok)
		}
	}
	if _, ok := ParseState("BLUE"); ok {
		t.Error("ParseState should reject unknown names")
	}
}

func TestRenderHUD(t *testing.T) {
	screen := core.NewScreen(60, 20)

	Render(screen, RenderState{
		State:           StateRed,
		Smoothed:        0.01,
		Level:           2,
		Cycle:           4,
		PhaseElapsedMS:  500,
		PhaseDurationMS: 2000,
		RedThreshold:    0.008,
	})
	out := screen.String()
	for _, want := range []string{"State: RED", "Motion: 0.0100", "Level: 2", "Cycle: 4"} {
		if !strings.Contains(out, want) {
			t.Errorf("HUD missing %q", want)
		}
	}
	if strings.Contains(out, "YOU DIED") {
		t.Error("alive HUD should not show the death box")
	}
	if c := screen.GetCell(hudX, 1); c.Color != core.ColorBrightRed {
		t.Errorf("state line color = %v, want bright red", c.Color)
	}

	Render(screen, RenderState{State: StateDead, IsDead: true, PhaseDurationMS: 2000})
	if !strings.Contains(screen.String(), "YOU DIED") {
		t.Error("dead HUD should show the death box")
	}
}
