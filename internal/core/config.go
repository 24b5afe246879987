package core

// RuntimeConfig contains settings passed to a front end at start-up.
type RuntimeConfig struct {
	ScreenW   int   // Screen width in characters
	ScreenH   int   // Screen height in characters
	FrameRate int   // UI refresh rate; the game itself advances at its own speed
	Seed      int64 // RNG seed for deterministic games
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		FrameRate: 30,
		Seed:      0, // 0 means use current time
	}
}
