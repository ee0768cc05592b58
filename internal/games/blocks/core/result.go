package core

import "time"

// Result summarizes a finished run for scoring and history consumers.
type Result struct {
	LevelIndex int
	Program    string
	Blocks     int // Blocks placed by the player
	Actions    int // Primitive actions actually executed
	Complete   bool
	Elapsed    time.Duration
	Position   Coord
	LastLog    string
	Reason     string // Why the run failed; empty when complete
}

// NewResult builds a Result from the final state of a run.
func NewResult(level *Level, program Program, final *State) Result {
	return Result{
		LevelIndex: level.Index,
		Program:    program.String(),
		Blocks:     program.Blocks(),
		Actions:    final.Actions,
		Complete:   final.Complete,
		Elapsed:    final.Elapsed,
		Position:   final.Position,
		LastLog:    final.LastLog(),
		Reason:     final.FailureReason(),
	}
}
