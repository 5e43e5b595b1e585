// Package motion provides the motion sources that feed raw samples to a
// game session. Real capture and image scoring live outside this module;
// these sources stand in for them: keyboard impulses for interactive play,
// seeded noise for bots, YAML scripts and recorded traces for replay.
package motion

import (
	"errors"

	"github.com/vovakirdan/redlight/internal/core"
	"github.com/vovakirdan/redlight/internal/registry"
)

// DefaultBurstProb is the noise bot's per-sample burst chance.
const DefaultBurstProb = 0.04

// Nudger is implemented by sources that react to player input.
type Nudger interface {
	// Nudge registers n movement impulses since the previous sample.
	Nudge(n int)
}

// Clamp restricts a sample to [0, 1].
func Clamp(v float64) float64 {
	return core.ClampF(v, 0, 1)
}

// Register the built-in sources with the registry
func init() {
	registry.Register("keyboard", "key presses add motion impulses (interactive play)",
		func(opts registry.Options) (registry.Source, error) {
			return NewKeyboard(opts.Seed), nil
		})
	registry.Register("noise", "seeded fidgeting bot with random movement bursts",
		func(opts registry.Options) (registry.Source, error) {
			p := opts.BurstProb
			if p <= 0 {
				p = DefaultBurstProb
			}
			return NewNoise(opts.Seed, p), nil
		})
	registry.Register("script", "YAML step script of motion levels (--script)",
		func(opts registry.Options) (registry.Source, error) {
			if opts.ScriptPath == "" {
				return nil, errors.New("motion: script source needs a script path")
			}
			return LoadScript(opts.ScriptPath)
		})
}
