package core

import (
	"context"
	"iter"
	"time"

	"github.com/charmbracelet/log"
)

// Observer receives every state a run produces, starting with the initial
// state. States passed to an observer are never modified afterwards.
type Observer func(*State)

// Options configures a run. The zero value is valid.
type Options struct {
	Facing   Dir              // Initial facing; the zero value is DirUp
	Start    time.Time        // Start of the elapsed-time window; defaults to the run start
	Clock    func() time.Time // Time source; defaults to time.Now
	Delay    time.Duration    // Pause before each action in paced runs
	Observer Observer         // Optional per-transition callback
	Logger   *log.Logger      // Optional debug logger
}

// DefaultOptions returns options with the default facing and 500ms pacing.
func DefaultOptions() Options {
	return Options{
		Facing: DefaultFacing,
		Delay:  500 * time.Millisecond,
	}
}

// frame is one level of the loop-expansion stack.
type frame struct {
	steps     []Step
	index     int
	remaining int // Iterations left including the current one
}

// Execution drives a program through the interpreter one primitive action
// at a time. Run, RunPaced, States and interactive playback all use it so
// they share identical transition logic.
type Execution struct {
	level    *Level
	program  Program
	opts     Options
	state    *State
	stack    []frame
	start    time.Time
	finished *State
}

// NewExecution prepares a run. It fails if the level does not validate
// (no start, several starts, mismatched layers); no state is produced then.
func NewExecution(level *Level, program Program, opts Options) (*Execution, error) {
	state, err := NewState(level, opts.Facing)
	if err != nil {
		return nil, err
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	start := opts.Start
	if start.IsZero() {
		start = opts.Clock()
	}

	e := &Execution{
		level:   level,
		program: program,
		opts:    opts,
		state:   state,
		start:   start,
	}
	if len(program) > 0 {
		e.stack = []frame{{steps: program, remaining: 1}}
	}

	if opts.Logger != nil {
		opts.Logger.Debug("run started",
			"level", level.Index,
			"start", state.Position,
			"facing", state.Facing,
			"blocks", program.Blocks(),
		)
	}
	return e, nil
}

// State returns the current state.
func (e *Execution) State() *State {
	return e.state
}

// Level returns the level being played.
func (e *Execution) Level() *Level {
	return e.level
}

// Program returns the program being executed.
func (e *Execution) Program() Program {
	return e.program
}

// Done returns true when no further action will be applied.
func (e *Execution) Done() bool {
	return e.finished != nil || e.state.Done() || !e.hasPending()
}

// Next applies the next primitive action and returns the new state.
// It returns false, with the current state, once the run is terminal or the
// program is exhausted.
func (e *Execution) Next() (*State, bool) {
	if e.finished != nil || e.state.Done() {
		return e.state, false
	}

	k, ok := e.advance()
	if !ok {
		return e.state, false
	}

	next := Apply(e.state, e.level, k)
	next.Elapsed = e.opts.Clock().Sub(e.start)
	e.state = next

	if e.opts.Logger != nil {
		e.opts.Logger.Debug("action applied",
			"action", k,
			"position", next.Position,
			"facing", next.Facing,
			"result", next.LastLog(),
		)
	}
	return next, true
}

// Finish closes the run: a run that did not reach the finish is marked
// failed (an invalid move already failed it, the closing log line is still
// added), and the elapsed time is recorded. Calling Finish again returns
// the same final state.
func (e *Execution) Finish() *State {
	if e.finished != nil {
		return e.finished
	}

	f := *e.state
	final := &f
	if !final.Complete {
		final.Failed = true
		final.logf(LogOutOfActions)
	}
	final.Elapsed = e.opts.Clock().Sub(e.start)
	e.finished = final
	e.state = final

	if e.opts.Logger != nil {
		e.opts.Logger.Debug("run finished",
			"level", e.level.Index,
			"complete", final.Complete,
			"actions", final.Actions,
			"elapsed", final.Elapsed,
		)
	}
	return final
}

// hasPending reports whether another primitive action remains.
func (e *Execution) hasPending() bool {
	probe := make([]frame, len(e.stack))
	copy(probe, e.stack)
	_, ok := nextPrimitive(&probe)
	return ok
}

// advance pops the next primitive action off the loop stack.
func (e *Execution) advance() (Kind, bool) {
	return nextPrimitive(&e.stack)
}

// nextPrimitive walks the loop stack to the next primitive action,
// entering loop bodies and repeating them as needed. Loops with no
// iterations or empty bodies contribute nothing.
func nextPrimitive(stack *[]frame) (Kind, bool) {
	for len(*stack) > 0 {
		top := &(*stack)[len(*stack)-1]

		if top.index >= len(top.steps) {
			top.remaining--
			if top.remaining > 0 && len(top.steps) > 0 {
				top.index = 0
				continue
			}
			*stack = (*stack)[:len(*stack)-1]
			continue
		}

		step := top.steps[top.index]
		top.index++

		if step.Kind == KindLoop {
			if step.Iterations > 0 && len(step.Body) > 0 {
				*stack = append(*stack, frame{steps: step.Body, remaining: step.Iterations})
			}
			continue
		}
		return step.Kind, true
	}
	return 0, false
}

// Run executes a program synchronously and returns the final state.
// The observer, if any, sees the initial state and every state after an
// action; it is never called when the level cannot be initialized.
func Run(level *Level, program Program, opts Options) (*State, error) {
	e, err := NewExecution(level, program, opts)
	if err != nil {
		return nil, err
	}

	observe(opts.Observer, e.State())
	for {
		s, ok := e.Next()
		if !ok {
			break
		}
		observe(opts.Observer, s)
	}
	return e.Finish(), nil
}

// RunPaced executes a program, waiting opts.Delay before each action.
// If ctx is cancelled the run stops between actions: no further observer
// calls are made and the last state is returned together with ctx.Err().
func RunPaced(ctx context.Context, level *Level, program Program, opts Options) (*State, error) {
	e, err := NewExecution(level, program, opts)
	if err != nil {
		return nil, err
	}

	observe(opts.Observer, e.State())
	for !e.Done() {
		if err := sleep(ctx, opts.Delay); err != nil {
			return e.State(), err
		}
		s, ok := e.Next()
		if !ok {
			break
		}
		observe(opts.Observer, s)
	}
	return e.Finish(), nil
}

// States returns an iterator over the initial state and each state after an
// action. Stopping the iteration early simply abandons the run.
func (e *Execution) States() iter.Seq[*State] {
	return func(yield func(*State) bool) {
		if !yield(e.State()) {
			return
		}
		for {
			s, ok := e.Next()
			if !ok || !yield(s) {
				return
			}
		}
	}
}

func observe(o Observer, s *State) {
	if o != nil {
		o(s)
	}
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
