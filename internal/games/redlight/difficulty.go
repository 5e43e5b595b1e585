package redlight

import "github.com/vovakirdan/redlight/internal/config"

// Progression tracks the level and cycle counters and derives the red-phase
// movement threshold from the level.
type Progression struct {
	level          int
	cycle          int
	cyclesPerLevel int
	base           float64
	step           float64
	static         bool
	cached         float64 // threshold at the starting level, used in static mode
}

// NewProgression creates a progression at level 1, cycle 1.
func NewProgression(motion config.MotionConfig, diff config.DifficultyConfig) *Progression {
	p := &Progression{
		cyclesPerLevel: diff.CyclesPerLevel,
		base:           motion.RedMoveThresholdBase,
		step:           motion.RedMoveThresholdStep,
		static:         diff.ThresholdMode == config.ThresholdStatic,
	}
	if p.cyclesPerLevel < 1 {
		p.cyclesPerLevel = 1
	}
	p.Reset()
	return p
}

// AdvanceCycle counts one RED->GREEN transition and levels up on every
// cyclesPerLevel-th cycle.
func (p *Progression) AdvanceCycle() {
	p.cycle++
	if p.cycle%p.cyclesPerLevel == 0 {
		p.level++
	}
}

// RedThreshold returns the motion level above which the player dies in RED.
func (p *Progression) RedThreshold() float64 {
	if p.static {
		return p.cached
	}
	return p.thresholdAt(p.level)
}

func (p *Progression) thresholdAt(level int) float64 {
	return p.base + float64(level-1)*p.step
}

// Reset returns to level 1, cycle 1.
func (p *Progression) Reset() {
	p.level = 1
	p.cycle = 1
	p.cached = p.thresholdAt(p.level)
}

// Level returns the current difficulty level (1-based).
func (p *Progression) Level() int {
	return p.level
}

// Cycle returns the current cycle (1-based).
func (p *Progression) Cycle() int {
	return p.cycle
}
