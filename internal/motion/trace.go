package motion

import "sort"

// Point is one recorded raw sample.
type Point struct {
	NowMS int64
	Raw   float64
}

// Trace replays recorded samples. A lookup returns the latest sample at or
// before nowMS, or the first sample when nowMS precedes the recording.
type Trace struct {
	points []Point
}

// NewTrace creates a trace source from points in recording order.
func NewTrace(points []Point) *Trace {
	return &Trace{points: points}
}

// Name returns the registry ID.
func (t *Trace) Name() string {
	return "trace"
}

// Len returns the number of recorded samples.
func (t *Trace) Len() int {
	return len(t.points)
}

// Sample returns the recorded level at nowMS.
func (t *Trace) Sample(nowMS int64) float64 {
	if len(t.points) == 0 {
		return 0
	}
	i := sort.Search(len(t.points), func(i int) bool {
		return t.points[i].NowMS > nowMS
	})
	if i == 0 {
		return Clamp(t.points[0].Raw)
	}
	return Clamp(t.points[i-1].Raw)
}
