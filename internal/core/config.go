package core

import "time"

// RuntimeConfig contains the settings the front end runs a board with.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // UI ticks per second
	BatchTicks int    // Ticks each event batch stays on screen
	Seed       uint64 // Board seed, 0 picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   30,
		BatchTicks: 4,
	}
}

// ResolveSeed returns the configured seed, or a clock-derived one when it is zero.
func (c RuntimeConfig) ResolveSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

// BatchDelay is how long one event batch stays on screen.
func (c RuntimeConfig) BatchDelay() time.Duration {
	if c.TickRate <= 0 || c.BatchTicks <= 0 {
		return 0
	}
	return time.Duration(c.BatchTicks) * time.Second / time.Duration(c.TickRate)
}
