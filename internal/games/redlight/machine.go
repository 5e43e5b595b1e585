package redlight

import "github.com/vovakirdan/redlight/internal/config"

// phaseTimer is the active GREEN or RED phase.
type phaseTimer struct {
	startMS    int64
	durationMS int64
}

func (p phaseTimer) elapsed(nowMS int64) int64 {
	return nowMS - p.startMS
}

// Machine is the game state machine. It is driven by one Tick per sample and
// is not safe for concurrent use; each session owns its own Machine.
type Machine struct {
	cfg      config.GameConfig
	state    State
	phase    phaseTimer
	idle     IdleTracker
	progress *Progression
	durs     *DurationSampler

	started  bool
	nowMS    int64
	smoothed float64
	quit     bool

	last    Transition
	changed bool
}

// NewMachine creates a machine in GREEN with a freshly sampled green duration.
// The green phase starts at the first Tick timestamp unless Start is called.
func NewMachine(cfg config.GameConfig, rng RandSource) *Machine {
	m := &Machine{
		cfg:      cfg,
		progress: NewProgression(cfg.Motion, cfg.Difficulty),
		durs:     NewDurationSampler(rng, cfg.Phases.Green, cfg.Phases.Red),
	}
	m.state = StateGreen
	m.phase = phaseTimer{durationMS: m.durs.SampleGreen()}
	return m
}

// Start anchors the initial green phase at nowMS.
func (m *Machine) Start(nowMS int64) {
	m.phase.startMS = nowMS
	m.nowMS = nowMS
	m.started = true
}

// Tick advances the machine with one smoothed motion sample and returns the
// resulting state. Guards are evaluated in order and resolve to a single
// next state; see resolve for how same-tick conflicts are settled.
func (m *Machine) Tick(nowMS int64, smoothed float64) State {
	if !m.started {
		m.Start(nowMS)
	}
	m.nowMS = nowMS
	m.smoothed = smoothed
	m.changed = false

	switch m.state {
	case StateGreen:
		m.tickGreen(nowMS, smoothed)
	case StateWarning:
		m.tickWarning(nowMS, smoothed)
	case StateRed:
		m.tickRed(nowMS, smoothed)
	case StateDead:
		// Terminal until restart.
	}
	return m.state
}

func (m *Machine) tickGreen(nowMS int64, smoothed float64) {
	still := smoothed < m.cfg.Motion.GreenMoveThreshold
	idleMS := m.idle.Update(nowMS, still)

	var idleNext State
	var idleReason Reason
	switch {
	case still && idleMS > m.cfg.Timers.IdleDeathMS:
		idleNext, idleReason = StateDead, ReasonIdleDeath
	case still && idleMS > m.cfg.Timers.IdleWarningMS:
		idleNext, idleReason = StateWarning, ReasonIdleWarning
	}

	expired := m.phase.elapsed(nowMS) > m.phase.durationMS
	switch m.resolve(idleReason != "", expired) {
	case guardEarly:
		m.enter(idleNext, idleReason)
	case guardExpiry:
		m.idle.Clear()
		m.phase = phaseTimer{startMS: nowMS, durationMS: m.durs.SampleRed()}
		m.enter(StateRed, ReasonGreenExpired)
	}
}

func (m *Machine) tickWarning(nowMS int64, smoothed float64) {
	if smoothed >= m.cfg.Motion.GreenMoveThreshold {
		m.idle.Clear()
		m.enter(StateGreen, ReasonMoved)
		return
	}
	if m.idle.Update(nowMS, true) > m.cfg.Timers.IdleDeathMS {
		m.enter(StateDead, ReasonIdleDeath)
	}
}

func (m *Machine) tickRed(nowMS int64, smoothed float64) {
	elapsed := m.phase.elapsed(nowMS)
	moved := elapsed > m.cfg.Timers.RedGraceMS && smoothed > m.progress.RedThreshold()
	expired := elapsed > m.phase.durationMS

	switch m.resolve(moved, expired) {
	case guardEarly:
		m.enter(StateDead, ReasonMovedInRed)
	case guardExpiry:
		m.idle.Clear()
		m.phase = phaseTimer{startMS: nowMS, durationMS: m.durs.SampleGreen()}
		m.progress.AdvanceCycle()
		m.enter(StateGreen, ReasonRedExpired)
	}
}

type guard int

const (
	guardNone guard = iota
	guardEarly
	guardExpiry
)

// resolve picks which of the two ordered guards of a phase wins this tick.
// The early guard (idle or movement) is evaluated first; a phase expiry in
// the same tick replaces it when ExpiryOverrides is set.
func (m *Machine) resolve(early, expired bool) guard {
	switch {
	case early && expired:
		if m.cfg.Difficulty.ExpiryOverrides {
			return guardExpiry
		}
		return guardEarly
	case early:
		return guardEarly
	case expired:
		return guardExpiry
	}
	return guardNone
}

func (m *Machine) enter(next State, reason Reason) {
	m.last = Transition{AtMS: m.nowMS, From: m.state, To: next, Reason: reason}
	m.changed = true
	m.state = next
}

// Submit applies an external command. It reports whether the command had
// any effect; restart outside DEAD is ignored.
func (m *Machine) Submit(cmd Command) bool {
	switch cmd {
	case CommandRestart:
		if m.state != StateDead {
			return false
		}
		m.idle.Clear()
		m.progress.Reset()
		m.phase = phaseTimer{startMS: m.nowMS, durationMS: m.durs.SampleGreen()}
		m.enter(StateGreen, ReasonRestart)
		return true
	case CommandQuit:
		m.quit = true
		return true
	}
	return false
}

// State returns the active state.
func (m *Machine) State() State {
	return m.state
}

// Quit reports whether a quit command has been submitted.
func (m *Machine) Quit() bool {
	return m.quit
}

// LastTransition returns the transition resolved by the most recent Tick or
// Submit, if any.
func (m *Machine) LastTransition() (Transition, bool) {
	return m.last, m.changed
}

// Level returns the current difficulty level.
func (m *Machine) Level() int {
	return m.progress.Level()
}

// Cycle returns the current cycle.
func (m *Machine) Cycle() int {
	return m.progress.Cycle()
}

// RedThreshold returns the active red-phase movement threshold.
func (m *Machine) RedThreshold() float64 {
	return m.progress.RedThreshold()
}

// PhaseDuration returns the sampled duration of the active phase.
func (m *Machine) PhaseDuration() int64 {
	return m.phase.durationMS
}

// IdleActive reports whether an idle window is open.
func (m *Machine) IdleActive() bool {
	return m.idle.Active()
}
