package redlight

import "github.com/vovakirdan/redlight/internal/config"

// RandSource is the randomness used to draw phase durations.
// *math/rand.Rand satisfies it, so tests can pass a seeded generator.
type RandSource interface {
	Int63n(n int64) int64
}

// DurationSampler draws phase lengths uniformly from inclusive ranges.
type DurationSampler struct {
	rng   RandSource
	green config.Range
	red   config.Range
}

// NewDurationSampler creates a sampler for the given green and red ranges.
func NewDurationSampler(rng RandSource, green, red config.Range) *DurationSampler {
	return &DurationSampler{rng: rng, green: green, red: red}
}

// SampleGreen returns a green phase duration in milliseconds.
func (s *DurationSampler) SampleGreen() int64 {
	return s.sample(s.green)
}

// SampleRed returns a red phase duration in milliseconds.
func (s *DurationSampler) SampleRed() int64 {
	return s.sample(s.red)
}

func (s *DurationSampler) sample(r config.Range) int64 {
	span := r.Max - r.Min
	if span <= 0 {
		return r.Min
	}
	return r.Min + s.rng.Int63n(span+1)
}
