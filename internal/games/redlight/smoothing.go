package redlight

// DefaultWindow is the number of raw samples averaged by MotionFilter.
const DefaultWindow = 5

// MotionFilter keeps the most recent raw samples and returns their mean.
type MotionFilter struct {
	samples []float64 // oldest first
	size    int
}

// NewMotionFilter creates a filter averaging over the last size samples.
// A size below 1 is treated as 1.
func NewMotionFilter(size int) *MotionFilter {
	if size < 1 {
		size = 1
	}
	return &MotionFilter{
		samples: make([]float64, 0, size),
		size:    size,
	}
}

// Push adds a raw sample and returns the smoothed value.
// Before the window fills, the mean covers only the samples seen so far.
func (f *MotionFilter) Push(sample float64) float64 {
	if len(f.samples) == f.size {
		copy(f.samples, f.samples[1:])
		f.samples = f.samples[:f.size-1]
	}
	f.samples = append(f.samples, sample)
	return f.Value()
}

// Value returns the mean of the current window, or 0 when empty.
func (f *MotionFilter) Value() float64 {
	if len(f.samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range f.samples {
		sum += s
	}
	return sum / float64(len(f.samples))
}

// Len returns the number of samples currently in the window.
func (f *MotionFilter) Len() int {
	return len(f.samples)
}

// Size returns the window capacity.
func (f *MotionFilter) Size() int {
	return f.size
}

// Reset empties the window.
func (f *MotionFilter) Reset() {
	f.samples = f.samples[:0]
}
