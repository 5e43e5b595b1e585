// Package redlight implements the Red Light / Green Light game core.
// The player is observed through a stream of motion samples and must stay
// still while the light is red. The package has no I/O and no TUI
// dependencies; hosts feed it samples and timestamps one tick at a time.
package redlight

// State is the active game state.
type State int

const (
	StateGreen State = iota
	StateWarning
	StateRed
	StateDead
)

// String returns the upper-case state name shown in the HUD.
func (s State) String() string {
	switch s {
	case StateGreen:
		return "GREEN"
	case StateWarning:
		return "WARNING"
	case StateRed:
		return "RED"
	case StateDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}

// ParseState converts a state name back to a State.
// Used when reading recorded traces.
func ParseState(name string) (State, bool) {
	switch name {
	case "GREEN":
		return StateGreen, true
	case "WARNING":
		return StateWarning, true
	case "RED":
		return StateRed, true
	case "DEAD":
		return StateDead, true
	}
	return StateGreen, false
}

// Command is an external control command submitted by the input layer.
type Command int

const (
	CommandRestart Command = iota + 1
	CommandQuit
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandRestart:
		return "restart"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Reason explains why a transition happened.
type Reason string

const (
	ReasonIdleWarning  Reason = "idle_warning"
	ReasonIdleDeath    Reason = "idle_death"
	ReasonGreenExpired Reason = "green_expired"
	ReasonMoved        Reason = "moved"
	ReasonMovedInRed   Reason = "moved_in_red"
	ReasonRedExpired   Reason = "red_expired"
	ReasonRestart      Reason = "restart"
)

// Transition records a resolved state change.
type Transition struct {
	AtMS   int64
	From   State
	To     State
	Reason Reason
}
