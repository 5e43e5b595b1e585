package motion

import "math/rand"

// Noise is a fidgeting bot: mostly still, with random bursts of movement.
type Noise struct {
	rng        *rand.Rand
	burstProb  float64 // chance of starting a burst on a sample
	burstLevel float64
	burstLeft  int
	burstTicks int
	floor      float64
}

// NewNoise creates a noise source. burstProb is the per-sample probability
// of starting a movement burst.
func NewNoise(seed int64, burstProb float64) *Noise {
	return &Noise{
		rng:        rand.New(rand.NewSource(seed)),
		burstProb:  burstProb,
		burstLevel: 0.02,
		burstTicks: 6,
		floor:      0.002,
	}
}

// Name returns the registry ID.
func (n *Noise) Name() string {
	return "noise"
}

// Sample returns the floor jitter, or a burst while one is active.
func (n *Noise) Sample(_ int64) float64 {
	if n.burstLeft == 0 && n.rng.Float64() < n.burstProb {
		n.burstLeft = n.burstTicks
	}
	v := n.rng.Float64() * n.floor
	if n.burstLeft > 0 {
		n.burstLeft--
		v += n.burstLevel * (0.5 + n.rng.Float64())
	}
	return Clamp(v)
}
