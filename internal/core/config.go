package core

// RuntimeConfig contains configuration passed to a session at start.
// Sessions use it to size the HUD and to seed phase durations.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Samples per second (default 30)
	Seed     int64 // RNG seed for reproducible phase durations
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickMS returns the tick interval in milliseconds.
func (c RuntimeConfig) TickMS() int64 {
	if c.TickRate <= 0 {
		return 1000 / 30
	}
	return int64(1000 / c.TickRate)
}
