package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovakirdan/redlight/internal/games/redlight"
)

// HeadlessOptions controls a virtual-time run.
type HeadlessOptions struct {
	TickMS      int64
	DurationMS  int64
	AutoRestart bool // restart immediately after each death
}

// RunHeadless drives sess with virtual timestamps 0, TickMS, 2*TickMS, ...
// up to DurationMS. Without AutoRestart it stops at the first death. It
// returns ctx.Err() if the context is cancelled mid-run, along with the
// partial summary.
func RunHeadless(ctx context.Context, sess *Session, opts HeadlessOptions) (Summary, error) {
	if opts.TickMS <= 0 {
		return Summary{}, fmt.Errorf("session: tick must be positive, got %dms", opts.TickMS)
	}
	if opts.DurationMS < 0 {
		return Summary{}, errors.New("session: duration must not be negative")
	}

	for now := int64(0); now <= opts.DurationMS && !sess.Done(); now += opts.TickMS {
		if err := ctx.Err(); err != nil {
			return sess.Summary(), err
		}
		if sess.State() == redlight.StateDead {
			if !opts.AutoRestart {
				break
			}
			sess.Restart()
		}
		sess.Step(now)
	}
	return sess.Summary(), nil
}
