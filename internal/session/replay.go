package session

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/redlight/internal/config"
	"github.com/vovakirdan/redlight/internal/games/redlight"
	"github.com/vovakirdan/redlight/internal/motion"
	"github.com/vovakirdan/redlight/internal/storage"
)

// Mismatch is a tick where the replayed state differs from the recording.
type Mismatch struct {
	Seq      int
	NowMS    int64
	Recorded string
	Replayed redlight.State
}

// ReplayReport is the outcome of re-running a recorded trace.
type ReplayReport struct {
	Samples     int
	Mismatches  []Mismatch
	Transitions []redlight.Transition
	Summary     Summary
}

// Matches reports whether every replayed tick agreed with the recording.
func (r ReplayReport) Matches() bool {
	return len(r.Mismatches) == 0
}

// Replay re-runs a recorded trace against the config and seed it was recorded
// with. Restarts are applied where the recording leaves DEAD.
func Replay(tr *storage.Trace, samples []storage.Sample, logger *log.Logger) (ReplayReport, error) {
	if tr == nil {
		return ReplayReport{}, errors.New("session: nil trace")
	}
	cfg, err := config.ParseGame([]byte(tr.ConfigYAML))
	if err != nil {
		return ReplayReport{}, fmt.Errorf("session: trace %d: %w", tr.ID, err)
	}

	points := make([]motion.Point, len(samples))
	for i, s := range samples {
		points[i] = motion.Point{NowMS: s.NowMS, Raw: s.Raw}
	}

	var report ReplayReport
	sess := New(Options{
		Config: cfg,
		Seed:   tr.Seed,
		Source: motion.NewTrace(points),
		Logger: logger,
		OnTransition: func(t redlight.Transition) {
			report.Transitions = append(report.Transitions, t)
		},
	})

	for _, s := range samples {
		if sess.State() == redlight.StateDead && s.State != redlight.StateDead.String() {
			sess.Restart()
		}
		rs := sess.Step(s.NowMS)
		if rs.State.String() != s.State {
			report.Mismatches = append(report.Mismatches, Mismatch{
				Seq:      s.Seq,
				NowMS:    s.NowMS,
				Recorded: s.State,
				Replayed: rs.State,
			})
		}
	}
	report.Samples = len(samples)
	report.Summary = sess.Summary()
	return report, nil
}
