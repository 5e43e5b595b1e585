package redlight

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/redlight/internal/config"
)

// seqRand returns queued offsets in order, clipped to the requested span.
type seqRand struct {
	offsets []int64
	next    int
}

func (r *seqRand) Int63n(n int64) int64 {
	v := r.offsets[r.next%len(r.offsets)]
	r.next++
	if v >= n {
		return n - 1
	}
	return v
}

const (
	still  = 0.001 // below the green threshold
	moving = 0.01  // above both green and level-1 red thresholds
	steady = 0.004 // moving in GREEN, tolerated in RED
)

// newTestMachine returns a machine whose first green phase lasts greenMS and
// whose first red phase lasts redMS, using the default config.
func newTestMachine(greenMS, redMS int64) *Machine {
	cfg := config.DefaultGameConfig()
	return newTestMachineWith(cfg, greenMS, redMS)
}

func newTestMachineWith(cfg config.GameConfig, greenMS, redMS int64) *Machine {
	rng := &seqRand{offsets: []int64{greenMS - cfg.Phases.Green.Min, redMS - cfg.Phases.Red.Min}}
	return NewMachine(cfg, rng)
}

func TestMachineInitialState(t *testing.T) {
	m := NewMachine(config.DefaultGameConfig(), rand.New(rand.NewSource(1)))

	if m.State() != StateGreen {
		t.Errorf("initial state = %s, want GREEN", m.State())
	}
	if m.Level() != 1 || m.Cycle() != 1 {
		t.Errorf("initial level/cycle = %d/%d, want 1/1", m.Level(), m.Cycle())
	}
	if !config.DefaultGameConfig().Phases.Green.Contains(m.PhaseDuration()) {
		t.Errorf("initial green duration %d outside range", m.PhaseDuration())
	}
	if m.IdleActive() {
		t.Error("idle window should start empty")
	}
}

func TestMachineIdleWarningThenDeath(t *testing.T) {
	m := newTestMachine(4200, 2000)

	steps := []struct {
		now  int64
		want State
	}{
		{0, StateGreen},
		{1000, StateGreen},
		{1800, StateGreen}, // idle == warning limit, not beyond it
		{1900, StateWarning},
		{3000, StateWarning},
		{3600, StateWarning},
		{3700, StateDead},
	}

	for _, s := range steps {
		if got := m.Tick(s.now, still); got != s.want {
			t.Fatalf("Tick(%d) = %s, want %s", s.now, got, s.want)
		}
	}

	tr, ok := m.LastTransition()
	if !ok || tr.Reason != ReasonIdleDeath || tr.From != StateWarning {
		t.Errorf("last transition = %+v (%v), want WARNING->DEAD idle_death", tr, ok)
	}
}

func TestMachineStillnessWithinWarningWindowNeverKills(t *testing.T) {
	for _, stillFor := range []int64{1801, 2500, 3000, 3600} {
		m := newTestMachine(4200, 2000)
		for now := int64(0); now <= stillFor; now += 50 {
			m.Tick(now, still)
		}
		m.Tick(stillFor, still)

		if m.State() != StateWarning {
			t.Errorf("still for %dms: state = %s, want WARNING", stillFor, m.State())
		}
	}
}

func TestMachineStillnessBeyondDeathLimitKills(t *testing.T) {
	m := newTestMachine(4200, 2000)
	for now := int64(0); now <= 3650; now += 50 {
		m.Tick(now, still)
	}
	if m.State() != StateDead {
		t.Errorf("state = %s, want DEAD", m.State())
	}
	if !m.Snapshot().IsDead {
		t.Error("snapshot should report IsDead")
	}
}

func TestMachineWarningEscape(t *testing.T) {
	m := newTestMachine(4200, 2000)
	m.Tick(0, still)
	m.Tick(2000, still)
	if m.State() != StateWarning {
		t.Fatalf("setup: state = %s, want WARNING", m.State())
	}

	// Exactly the green threshold counts as movement.
	if got := m.Tick(2100, 0.004); got != StateGreen {
		t.Fatalf("Tick with movement = %s, want GREEN", got)
	}
	if m.IdleActive() {
		t.Error("escaping WARNING should clear the idle window")
	}
	if tr, _ := m.LastTransition(); tr.Reason != ReasonMoved {
		t.Errorf("reason = %s, want moved", tr.Reason)
	}

	for now := int64(2200); now < 2600; now += 100 {
		if got := m.Tick(now, moving); got != StateGreen {
			t.Errorf("Tick(%d) = %s, repeated movement should stay GREEN", now, got)
		}
	}

	// A fresh idle window starts from the next still sample.
	m.Tick(2600, still)
	m.Tick(4000, still)
	if m.State() != StateGreen {
		t.Errorf("idle restarted at 2600, state at 4000 = %s, want GREEN", m.State())
	}
}

func TestMachineObservedScenario(t *testing.T) {
	// green_duration=3000, still samples at 0,1000,2000,3700,3800.
	// WARNING has no phase expiry, so the 3700 tick resolves on idle time.
	m := newTestMachine(3000, 2000)

	m.Tick(0, still)
	m.Tick(1000, still)
	if got := m.Tick(2000, still); got != StateWarning {
		t.Fatalf("Tick(2000) = %s, want WARNING", got)
	}
	if got := m.Tick(3700, still); got != StateDead {
		t.Fatalf("Tick(3700) = %s, want DEAD", got)
	}
	if got := m.Tick(3800, still); got != StateDead {
		t.Fatalf("Tick(3800) = %s, DEAD should be terminal", got)
	}
}

func TestMachineGreenExpiryOverridesIdle(t *testing.T) {
	tests := []struct {
		name      string
		now       int64
		overrides bool
		want      State
	}{
		{"warning overridden", 3100, true, StateRed},
		{"death overridden", 3700, true, StateRed},
		{"warning kept", 3100, false, StateWarning},
		{"death kept", 3700, false, StateDead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultGameConfig()
			cfg.Difficulty.ExpiryOverrides = tt.overrides
			m := newTestMachineWith(cfg, 3000, 2000)

			m.Tick(0, still)
			if got := m.Tick(tt.now, still); got != tt.want {
				t.Fatalf("Tick(%d) = %s, want %s", tt.now, got, tt.want)
			}
			if tt.want == StateRed {
				if m.IdleActive() {
					t.Error("entering RED should clear the idle window")
				}
				if m.PhaseDuration() != 2000 {
					t.Errorf("red duration = %d, want 2000", m.PhaseDuration())
				}
				if tr, _ := m.LastTransition(); tr.Reason != ReasonGreenExpired {
					t.Errorf("reason = %s, want green_expired", tr.Reason)
				}
			}
		})
	}
}

// enterRed drives a fresh machine into RED at 3001 with the given durations.
func enterRed(t *testing.T, m *Machine) int64 {
	t.Helper()
	m.Tick(0, moving)
	if got := m.Tick(3001, moving); got != StateRed {
		t.Fatalf("setup: Tick(3001) = %s, want RED", got)
	}
	return 3001
}

func TestMachineRedGracePeriod(t *testing.T) {
	m := newTestMachine(3000, 2000)
	start := enterRed(t, m)

	if got := m.Tick(start+600, moving); got != StateRed {
		t.Errorf("movement inside grace: state = %s, want RED", got)
	}
	if got := m.Tick(start+650, moving); got != StateRed {
		t.Errorf("movement at grace limit: state = %s, want RED", got)
	}
	if got := m.Tick(start+700, moving); got != StateDead {
		t.Errorf("movement after grace: state = %s, want DEAD", got)
	}
	if tr, _ := m.LastTransition(); tr.Reason != ReasonMovedInRed {
		t.Errorf("reason = %s, want moved_in_red", tr.Reason)
	}
}

func TestMachineRedThresholdIsStrict(t *testing.T) {
	m := newTestMachine(3000, 2000)
	start := enterRed(t, m)

	if got := m.Tick(start+700, 0.005); got != StateRed {
		t.Errorf("motion equal to red threshold: state = %s, want RED", got)
	}
}

func TestMachineRedExpiry(t *testing.T) {
	m := newTestMachine(3000, 2000)
	start := enterRed(t, m)

	if got := m.Tick(start+2000, steady); got != StateRed {
		t.Fatalf("at red duration: state = %s, want RED", got)
	}
	if got := m.Tick(start+2001, steady); got != StateGreen {
		t.Fatalf("after red duration: state = %s, want GREEN", got)
	}
	if m.Cycle() != 2 || m.Level() != 1 {
		t.Errorf("level/cycle = %d/%d, want 1/2", m.Level(), m.Cycle())
	}
	snap := m.Snapshot()
	if snap.PhaseElapsedMS != 0 {
		t.Errorf("new green phase elapsed = %d, want 0", snap.PhaseElapsedMS)
	}
	// seqRand cycles back to the green offset.
	if snap.PhaseDurationMS != 3000 {
		t.Errorf("new green duration = %d, want 3000", snap.PhaseDurationMS)
	}
}

func TestMachineRedExpiryOverridesMovement(t *testing.T) {
	for _, overrides := range []bool{true, false} {
		cfg := config.DefaultGameConfig()
		cfg.Difficulty.ExpiryOverrides = overrides
		m := newTestMachineWith(cfg, 3000, 2000)
		start := enterRed(t, m)

		got := m.Tick(start+2100, moving)
		want := StateDead
		if overrides {
			want = StateGreen
		}
		if got != want {
			t.Errorf("overrides=%v: state = %s, want %s", overrides, got, want)
		}
	}
}

func TestMachineCycleLevelInvariant(t *testing.T) {
	m := NewMachine(config.DefaultGameConfig(), rand.New(rand.NewSource(7)))

	transitions := 0
	for now := int64(0); transitions < 9 && now < 200_000; now += 100 {
		m.Tick(now, steady)
		tr, ok := m.LastTransition()
		if !ok {
			continue
		}
		if tr.To == StateDead {
			t.Fatalf("unexpected death at %d: %+v", now, tr)
		}
		if tr.Reason != ReasonRedExpired {
			continue
		}
		transitions++
		if transitions%3 == 0 {
			k := transitions / 3
			if m.Level() != 1+k || m.Cycle() != 1+3*k {
				t.Errorf("after %d cycles: level/cycle = %d/%d, want %d/%d",
					transitions, m.Level(), m.Cycle(), 1+k, 1+3*k)
			}
		}
	}
	if transitions != 9 {
		t.Fatalf("only %d RED->GREEN transitions observed", transitions)
	}
}

func TestMachineRestart(t *testing.T) {
	m := NewMachine(config.DefaultGameConfig(), rand.New(rand.NewSource(3)))

	if m.Submit(CommandRestart) {
		t.Error("restart outside DEAD should be ignored")
	}

	// Keep moving until RED catches it, then restart.
	for now := int64(0); m.State() != StateDead; now += 100 {
		m.Tick(now, moving)
		if now > 20_000 {
			t.Fatal("machine never died")
		}
	}
	deadAt := m.Snapshot()

	if !m.Submit(CommandRestart) {
		t.Fatal("restart from DEAD should apply")
	}
	snap := m.Snapshot()
	if snap.State != StateGreen || snap.Level != 1 || snap.Cycle != 1 {
		t.Errorf("after restart: %+v", snap)
	}
	if m.IdleActive() {
		t.Error("restart should clear the idle window")
	}
	if !config.DefaultGameConfig().Phases.Green.Contains(snap.PhaseDurationMS) {
		t.Errorf("restart green duration %d outside range", snap.PhaseDurationMS)
	}
	if snap.PhaseElapsedMS != 0 {
		t.Errorf("restart should start a phase at the last tick, elapsed = %d (dead snapshot %+v)", snap.PhaseElapsedMS, deadAt)
	}
	if tr, ok := m.LastTransition(); !ok || tr.Reason != ReasonRestart {
		t.Errorf("last transition = %+v, want restart", tr)
	}
}

func TestMachineQuit(t *testing.T) {
	m := newTestMachine(3000, 2000)
	m.Tick(0, moving)

	if m.Quit() {
		t.Fatal("quit should start false")
	}
	m.Submit(CommandQuit)
	if !m.Quit() {
		t.Error("quit command should mark the session finished")
	}
	if m.State() != StateGreen {
		t.Errorf("quit should not change state, got %s", m.State())
	}
}

func TestMachineDeterminism(t *testing.T) {
	run := func() []RenderState {
		m := NewMachine(config.DefaultGameConfig(), rand.New(rand.NewSource(42)))
		noise := rand.New(rand.NewSource(99))
		var snaps []RenderState
		for now := int64(0); now < 30_000; now += 33 {
			m.Tick(now, noise.Float64()*0.008)
			if m.State() == StateDead {
				m.Submit(CommandRestart)
			}
			snaps = append(snaps, m.Snapshot())
		}
		return snaps
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverge at tick %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestMachineSnapshot(t *testing.T) {
	m := newTestMachine(3000, 2000)
	m.Tick(0, moving)
	m.Tick(1000, 0.002)

	snap := m.Snapshot()
	if snap.State != StateGreen || snap.IsDead {
		t.Errorf("state = %s dead=%v", snap.State, snap.IsDead)
	}
	if snap.Smoothed != 0.002 {
		t.Errorf("Smoothed = %v, want 0.002", snap.Smoothed)
	}
	if snap.PhaseElapsedMS != 1000 || snap.PhaseDurationMS != 3000 {
		t.Errorf("phase = %d/%d, want 1000/3000", snap.PhaseElapsedMS, snap.PhaseDurationMS)
	}
	if snap.RemainingMS() != 2000 {
		t.Errorf("RemainingMS = %d, want 2000", snap.RemainingMS())
	}
	if r := snap.RemainingRatio(); r < 0.666 || r > 0.667 {
		t.Errorf("RemainingRatio = %v, want ~0.667", r)
	}
	if snap.RedThreshold != 0.005 {
		t.Errorf("RedThreshold = %v, want 0.005", snap.RedThreshold)
	}
}
