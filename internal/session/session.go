// Package session drives one game: it samples a motion source, smooths the
// signal, ticks the state machine, logs transitions and optionally records
// the sample stream. A Session is confined to the goroutine that ticks it.
package session

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/redlight/internal/config"
	"github.com/vovakirdan/redlight/internal/games/redlight"
	"github.com/vovakirdan/redlight/internal/motion"
	"github.com/vovakirdan/redlight/internal/registry"
)

// Options configures a new Session.
type Options struct {
	Config   config.GameConfig
	Seed     int64 // seeds phase durations
	Source   registry.Source
	Recorder *Recorder   // optional
	Logger   *log.Logger // optional; discards when nil

	// OnTransition is called for every resolved transition.
	OnTransition func(redlight.Transition)
}

// Summary aggregates a session's progress.
type Summary struct {
	Ticks       int
	Deaths      int
	Restarts    int
	Transitions int
	MaxLevel    int
	MaxCycle    int
	LastState   redlight.State
}

// Session owns the machine, filter and source for one player.
type Session struct {
	machine  *redlight.Machine
	filter   *redlight.MotionFilter
	source   registry.Source
	recorder *Recorder
	logger   *log.Logger
	onTrans  func(redlight.Transition)
	summary  Summary
}

// New creates a session in GREEN.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		machine:  redlight.NewMachine(opts.Config, rand.New(rand.NewSource(opts.Seed))),
		filter:   redlight.NewMotionFilter(opts.Config.Motion.SmoothingWindow),
		source:   opts.Source,
		recorder: opts.Recorder,
		logger:   logger,
		onTrans:  opts.OnTransition,
		summary:  Summary{MaxLevel: 1, MaxCycle: 1},
	}
}

// Step samples the source at nowMS, ticks the machine and returns the
// snapshot for rendering. DEAD sessions keep sampling so the HUD stays live.
func (s *Session) Step(nowMS int64) redlight.RenderState {
	raw := motion.Clamp(s.source.Sample(nowMS))
	smoothed := s.filter.Push(raw)
	state := s.machine.Tick(nowMS, smoothed)

	s.summary.Ticks++
	s.summary.LastState = state
	s.noteTransition()
	if lvl := s.machine.Level(); lvl > s.summary.MaxLevel {
		s.summary.MaxLevel = lvl
	}
	if cyc := s.machine.Cycle(); cyc > s.summary.MaxCycle {
		s.summary.MaxCycle = cyc
	}

	if s.recorder != nil {
		s.recorder.Record(nowMS, raw, smoothed, state)
	}
	return s.machine.Snapshot()
}

func (s *Session) noteTransition() {
	tr, ok := s.machine.LastTransition()
	if !ok {
		return
	}
	s.summary.Transitions++
	switch tr.To {
	case redlight.StateDead:
		s.summary.Deaths++
		s.logger.Warn("player eliminated",
			"reason", tr.Reason, "at_ms", tr.AtMS,
			"level", s.machine.Level(), "cycle", s.machine.Cycle())
	default:
		s.logger.Info("transition",
			"from", tr.From, "to", tr.To, "reason", tr.Reason, "at_ms", tr.AtMS)
	}
	if s.onTrans != nil {
		s.onTrans(tr)
	}
}

// Restart submits a restart command. Ignored unless the player is dead.
func (s *Session) Restart() bool {
	if !s.machine.Submit(redlight.CommandRestart) {
		return false
	}
	s.summary.Restarts++
	s.summary.LastState = s.machine.State()
	s.noteTransition()
	return true
}

// Quit submits a quit command.
func (s *Session) Quit() {
	s.machine.Submit(redlight.CommandQuit)
}

// Done reports whether the session has been quit.
func (s *Session) Done() bool {
	return s.machine.Quit()
}

// Nudge forwards player movement to sources that react to input.
func (s *Session) Nudge(n int) {
	if nd, ok := s.source.(motion.Nudger); ok {
		nd.Nudge(n)
	}
}

// State returns the active game state.
func (s *Session) State() redlight.State {
	return s.machine.State()
}

// Snapshot returns the latest render state.
func (s *Session) Snapshot() redlight.RenderState {
	return s.machine.Snapshot()
}

// Summary returns the progress so far.
func (s *Session) Summary() Summary {
	return s.summary
}

// SourceName returns the ID of the motion source.
func (s *Session) SourceName() string {
	return s.source.Name()
}

// Close finishes the recording, if any, with the given outcome.
func (s *Session) Close(outcome string) error {
	if s.recorder == nil {
		return nil
	}
	return s.recorder.Finish(s.summary, outcome)
}
