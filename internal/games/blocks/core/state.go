package core

import (
	"fmt"
	"slices"
	"time"
)

// Log lines written by the engine.
const (
	LogStarted      = "Game started"
	LogInvalidMove  = "Invalid move - FAILED!"
	LogPickedUpKey  = "Picked up key"
	LogReachedGoal  = "Reached finish! Level complete!"
	LogJumping      = "Jumping..."
	LogUnlocked     = "Used key to unlock lock"
	LogNeedKey      = "Need key to unlock lock"
	LogNothingToUse = "Nothing to use"
	LogNothingHere  = "Nothing to use here"
	LogOutOfActions = "Failed to reach finish"
)

// DefaultFacing is the direction the player faces when no other is configured.
const DefaultFacing = DirRight

// State is one snapshot of a run.
//
// A State is never modified after it has been handed to an observer: every
// transition returns a new State. Objects, Inventory and Log may share
// backing storage with earlier snapshots but are never written through.
type State struct {
	Position  Coord
	Facing    Dir
	Inventory []Item
	Objects   *Objects
	Complete  bool
	Failed    bool
	Jumping   bool // Set only on the state produced by a jump
	Elapsed   time.Duration
	Log       []string
	Actions   int // Primitive actions applied so far
}

// NewState creates the initial state for a run of level.
// The level is validated first, since its fields may have been set by hand
// rather than through NewLevel. The object layer is deep-copied so the run
// never mutates it.
func NewState(level *Level, facing Dir) (*State, error) {
	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("initializing level: %w", err)
	}
	start, err := FindStart(level.Objects)
	if err != nil {
		return nil, fmt.Errorf("initializing level %d: %w", level.Index, err)
	}

	return &State{
		Position:  start,
		Facing:    facing,
		Inventory: []Item{},
		Objects:   level.Objects.Clone(),
		Log:       []string{LogStarted},
	}, nil
}

// Done returns true once the run has reached a terminal state.
func (s *State) Done() bool {
	return s.Complete || s.Failed
}

// HasItem reports whether the inventory holds at least one of item.
func (s *State) HasItem(item Item) bool {
	return slices.Contains(s.Inventory, item)
}

// CountItem returns how many of item the inventory holds.
func (s *State) CountItem(item Item) int {
	n := 0
	for _, it := range s.Inventory {
		if it == item {
			n++
		}
	}
	return n
}

// LastLog returns the most recent log line.
func (s *State) LastLog() string {
	if len(s.Log) == 0 {
		return ""
	}
	return s.Log[len(s.Log)-1]
}

// FailureReason reports why a failed run stopped. An invalid move ends a run
// at once, so its log line wins over the closing line appended after it.
// It is empty unless the run failed.
func (s *State) FailureReason() string {
	if !s.Failed {
		return ""
	}
	for _, line := range s.Log {
		if line == LogInvalidMove {
			return LogInvalidMove
		}
	}
	return LogOutOfActions
}

// Clone returns a fully independent deep copy.
func (s *State) Clone() *State {
	return &State{
		Position:  s.Position,
		Facing:    s.Facing,
		Inventory: slices.Clone(s.Inventory),
		Objects:   s.Objects.Clone(),
		Complete:  s.Complete,
		Failed:    s.Failed,
		Jumping:   s.Jumping,
		Elapsed:   s.Elapsed,
		Log:       slices.Clone(s.Log),
		Actions:   s.Actions,
	}
}

// next returns a shallow copy ready to be modified by a transition.
// The jump pulse is cleared here so it lasts exactly one state.
func (s *State) next() *State {
	n := *s
	n.Jumping = false
	return &n
}

// logf appends a log line without writing into storage shared with s's
// predecessors.
func (s *State) logf(format string, args ...any) {
	s.Log = append(slices.Clip(s.Log), fmt.Sprintf(format, args...))
}
