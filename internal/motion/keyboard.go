package motion

import "math/rand"

// Keyboard turns key presses into motion. Each press adds an impulse that
// decays geometrically on every sample, on top of faint sensor jitter that
// stays below the default green threshold.
type Keyboard struct {
	level   float64
	impulse float64
	decay   float64
	jitter  float64
	rng     *rand.Rand
}

// Keyboard defaults
const (
	DefaultImpulse = 0.012
	DefaultDecay   = 0.7
	DefaultJitter  = 0.003
)

// NewKeyboard creates a keyboard source with default tuning.
func NewKeyboard(seed int64) *Keyboard {
	return &Keyboard{
		impulse: DefaultImpulse,
		decay:   DefaultDecay,
		jitter:  DefaultJitter,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Name returns the registry ID.
func (k *Keyboard) Name() string {
	return "keyboard"
}

// Nudge adds n movement impulses.
func (k *Keyboard) Nudge(n int) {
	if n <= 0 {
		return
	}
	k.level += float64(n) * k.impulse
}

// Sample returns the current motion level and lets it decay.
func (k *Keyboard) Sample(_ int64) float64 {
	v := k.level + k.rng.Float64()*k.jitter
	k.level *= k.decay
	if k.level < 1e-6 {
		k.level = 0
	}
	return Clamp(v)
}
