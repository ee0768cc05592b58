package core

import "time"

// RuntimeConfig contains configuration passed to the game adapter at reset.
type RuntimeConfig struct {
	ScreenW   int           // Screen width in characters
	ScreenH   int           // Screen height in characters
	TickRate  int           // Ticks per second (default 30)
	StepDelay time.Duration // Pause between program actions; 0 plays instantly
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		TickRate:  30,
		StepDelay: 500 * time.Millisecond,
	}
}

// TickInterval returns the wall-clock length of one tick.
func (c RuntimeConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState represents the current state of a playback.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Actions  int  // Primitive actions applied so far
	Complete bool // The finish cell was reached
	Failed   bool // The run failed or ran out of actions
	Paused   bool // Playback is paused
	GameOver bool // The run is closed and its result is available
}

// StepResult is returned by Game.Step() after each tick.
type StepResult struct {
	State    GameState
	Advanced int  // Program actions applied during this tick
	Finished bool // The run closed during this tick
}
