package redlight

// RenderState is the per-tick snapshot consumed by the rendering layer.
type RenderState struct {
	State           State
	Smoothed        float64
	Level           int
	Cycle           int
	PhaseElapsedMS  int64
	PhaseDurationMS int64
	IsDead          bool

	RedThreshold float64
	IdleMS       int64
}

// Snapshot returns the render state as of the most recent tick.
func (m *Machine) Snapshot() RenderState {
	return RenderState{
		State:           m.state,
		Smoothed:        m.smoothed,
		Level:           m.progress.Level(),
		Cycle:           m.progress.Cycle(),
		PhaseElapsedMS:  m.phase.elapsed(m.nowMS),
		PhaseDurationMS: m.phase.durationMS,
		IsDead:          m.state == StateDead,
		RedThreshold:    m.progress.RedThreshold(),
		IdleMS:          m.idle.Duration(m.nowMS),
	}
}

// RemainingMS returns the time left in the active phase, never negative.
func (r RenderState) RemainingMS() int64 {
	if rem := r.PhaseDurationMS - r.PhaseElapsedMS; rem > 0 {
		return rem
	}
	return 0
}

// RemainingRatio returns RemainingMS as a fraction of the phase duration.
func (r RenderState) RemainingRatio() float64 {
	if r.PhaseDurationMS <= 0 {
		return 0
	}
	return float64(r.RemainingMS()) / float64(r.PhaseDurationMS)
}
