package core

import "time"

// DefaultTickRate is used when a RuntimeConfig leaves TickRate at zero.
const DefaultTickRate = 60

// RuntimeConfig is what a front-end hands a game on Reset: the terminal
// size it may draw into and how the simulation is clocked.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; the CLI picks one from the clock when unset
}

// DefaultConfig returns an 80x24 terminal at the default tick rate.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: DefaultTickRate,
	}
}

func (c RuntimeConfig) rate() int {
	if c.TickRate <= 0 {
		return DefaultTickRate
	}
	return c.TickRate
}

// TickInterval is the wall-clock time between two ticks.
func (c RuntimeConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.rate())
}

// TickMsecs is the simulated time one tick advances, in milliseconds.
func (c RuntimeConfig) TickMsecs() float64 {
	return 1000 / float64(c.rate())
}

// GameState is the part of a game the front-end needs between ticks:
// what to save and whether the player may leave.
type GameState struct {
	Score    int
	Level    int  // 1-indexed
	GameOver bool // The run ended; a cleared level waiting for Confirm is not over
	Paused   bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
}
