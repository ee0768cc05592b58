package core_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vovakirdan/blockbot/internal/games/blocks/core"
)

// sameGameplay compares states on the fields that affect play. Elapsed time
// and log wording are ignored.
var sameGameplay = cmp.Options{
	cmpopts.IgnoreFields(core.State{}, "Elapsed", "Log"),
	cmpopts.EquateEmpty(),
}

// checkInvariants verifies the properties every emitted state must hold.
func checkInvariants(t *testing.T, lvl *core.Level, frames []*core.State) {
	t.Helper()

	terminal := false
	for i, s := range frames {
		if !lvl.Terrain.InBounds(s.Position) {
			t.Errorf("frame %d: position %v out of bounds", i, s.Position)
		}
		if lvl.Terrain.Get(s.Position) != core.CellPath {
			t.Errorf("frame %d: position %v is not on a path", i, s.Position)
		}
		if s.Complete && s.Failed {
			t.Errorf("frame %d: both complete and failed", i)
		}
		if terminal {
			t.Errorf("frame %d emitted after a terminal state", i)
		}
		terminal = s.Done()
	}
}

func TestCorridorCompletes(t *testing.T) {
	lvl := mustLevel(t, "S.F")
	prog := core.Program{core.Forward, core.Forward, core.Forward}

	final, frames := run(t, lvl, prog)
	checkInvariants(t, lvl, frames)

	if !final.Complete || final.Failed {
		t.Fatalf("expected completion, got complete=%v failed=%v", final.Complete, final.Failed)
	}
	if len(frames) != 3 {
		t.Errorf("expected 3 frames (initial + 2 moves), got %d", len(frames))
	}
	if final.Actions != 2 {
		t.Errorf("expected the third forward to be skipped, got %d actions", final.Actions)
	}

	want := []string{
		core.LogStarted,
		"Moved forward to (1, 0)",
		"Moved forward to (2, 0)",
		core.LogReachedGoal,
	}
	if diff := cmp.Diff(want, final.Log); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
}

func TestExhaustedProgramFails(t *testing.T) {
	lvl := mustLevel(t, "S..F")

	final, frames := run(t, lvl, core.Program{core.Forward})
	checkInvariants(t, lvl, frames)

	if !final.Failed || final.Complete {
		t.Fatalf("expected failure, got complete=%v failed=%v", final.Complete, final.Failed)
	}
	if final.LastLog() != core.LogOutOfActions {
		t.Errorf("expected %q, got %q", core.LogOutOfActions, final.LastLog())
	}
	if len(frames) != 2 {
		t.Errorf("expected the closing state not to be observed, got %d frames", len(frames))
	}
	if frames[1].Failed {
		t.Error("observed state was modified when the run was closed")
	}
}

func TestEmptyProgramFails(t *testing.T) {
	lvl := mustLevel(t, "SF")

	final, frames := run(t, lvl, nil)
	if len(frames) != 1 {
		t.Errorf("expected only the initial frame, got %d", len(frames))
	}
	if !final.Failed || final.Actions != 0 {
		t.Errorf("expected an immediate failure, got failed=%v actions=%d", final.Failed, final.Actions)
	}
}

func TestInvalidMoveStillLogsClosingLine(t *testing.T) {
	lvl := mustLevel(t, "S#F")

	final, _ := run(t, lvl, core.Program{core.Forward, core.Forward})
	want := []string{core.LogStarted, core.LogInvalidMove, core.LogOutOfActions}
	if diff := cmp.Diff(want, final.Log); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
}

func TestFailureReason(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		prog core.Program
		want string
	}{
		{"invalid move", []string{"S#F"}, core.Program{core.Forward, core.Forward}, core.LogInvalidMove},
		{"out of actions", []string{"S..F"}, core.Program{core.Forward}, core.LogOutOfActions},
		{"complete", []string{"S.F"}, core.Program{core.Forward, core.Forward}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl := mustLevel(t, tt.rows...)
			final, _ := run(t, lvl, tt.prog)

			if got := final.FailureReason(); got != tt.want {
				t.Errorf("FailureReason() = %q, want %q", got, tt.want)
			}
			if r := core.NewResult(lvl, tt.prog, final); r.Reason != tt.want {
				t.Errorf("Result.Reason = %q, want %q", r.Reason, tt.want)
			}
		})
	}
}

func TestLoopEquivalence(t *testing.T) {
	lvl := mustLevel(t, "S...")

	looped, loopFrames := run(t, lvl, core.Program{core.Loop(3, core.Forward)})
	flat, flatFrames := run(t, lvl, core.Program{core.Forward, core.Forward, core.Forward})

	if diff := cmp.Diff(flatFrames, loopFrames, sameGameplay); diff != "" {
		t.Errorf("loop trace differs from flat trace (-flat +loop):\n%s", diff)
	}
	if diff := cmp.Diff(flat, looped, sameGameplay); diff != "" {
		t.Errorf("final states differ (-flat +loop):\n%s", diff)
	}
	if looped.Position != core.C(3, 0) {
		t.Errorf("expected player at (3,0), got %v", looped.Position)
	}
}

func TestNestedLoops(t *testing.T) {
	// Clockwise ring around a ground centre; the finish is the last cell.
	lvl := mustLevel(t,
		"S..",
		"F#.",
		"...",
	)
	prog := core.Program{
		core.Loop(4,
			core.Loop(2, core.Forward),
			core.TurnRight,
		),
	}

	final, frames := run(t, lvl, prog)
	checkInvariants(t, lvl, frames)

	if !final.Complete {
		t.Fatalf("expected to walk the ring, log: %v", final.Log)
	}
	if final.Actions != 10 {
		t.Errorf("expected to stop on the first step of the last side, got %d actions", final.Actions)
	}
	if final.Position != core.C(0, 1) {
		t.Errorf("expected to stop on the finish, got %v", final.Position)
	}
}

func TestZeroIterationLoopDoesNothing(t *testing.T) {
	lvl := mustLevel(t, "SF")
	prog := core.Program{core.Loop(0, core.Forward), core.Loop(2), core.Forward}

	final, _ := run(t, lvl, prog)
	if !final.Complete {
		t.Fatalf("expected completion, log: %v", final.Log)
	}
	if final.Actions != 1 {
		t.Errorf("expected 1 action, got %d", final.Actions)
	}
}

func TestRunWithoutStart(t *testing.T) {
	lvl := &core.Level{
		Index:   7,
		Terrain: core.NewTerrain(2, 1),
		Objects: core.NewObjects(2, 1),
	}

	called := false
	o := opts()
	o.Observer = func(*core.State) { called = true }

	_, err := core.Run(lvl, core.Program{core.Forward}, o)
	if !errors.Is(err, core.ErrNoStart) {
		t.Fatalf("expected ErrNoStart, got %v", err)
	}
	if called {
		t.Error("observer called for a level that cannot start")
	}
}

func TestRunRejectsInvalidLevel(t *testing.T) {
	twoStarts := &core.Level{
		Index:   8,
		Terrain: core.NewTerrain(3, 1),
		Objects: core.NewObjects(3, 1),
	}
	for x := 0; x < 3; x++ {
		twoStarts.Terrain.Set(core.C(x, 0), core.CellPath)
	}
	twoStarts.Objects.Set(core.C(0, 0), core.ObjectStart)
	twoStarts.Objects.Set(core.C(2, 0), core.ObjectStart)

	mismatched := &core.Level{
		Index:   9,
		Terrain: core.NewTerrain(3, 1),
		Objects: core.NewObjects(2, 2),
	}
	for x := 0; x < 3; x++ {
		mismatched.Terrain.Set(core.C(x, 0), core.CellPath)
	}
	mismatched.Objects.Set(core.C(0, 0), core.ObjectStart)

	tests := []struct {
		name  string
		level *core.Level
		want  error
	}{
		{"two starts", twoStarts, core.ErrMultipleStarts},
		{"mismatched layers", mismatched, core.ErrDimensionMismatch},
		{"zero level", &core.Level{}, core.ErrEmptyLevel},
		{"nil level", nil, core.ErrEmptyLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			o := opts()
			o.Observer = func(*core.State) { called = true }

			state, err := core.Run(tt.level, core.Program{core.Forward}, o)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Run error = %v, want %v", err, tt.want)
			}
			if state != nil {
				t.Errorf("Run returned state %+v for an invalid level", state)
			}
			if called {
				t.Error("observer called for an invalid level")
			}

			if _, err := core.NewExecution(tt.level, nil, o); !errors.Is(err, tt.want) {
				t.Errorf("NewExecution error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestInitialFacing(t *testing.T) {
	lvl := mustLevel(t,
		"S",
		"F",
	)
	o := opts()
	o.Facing = core.DirDown

	final, err := core.Run(lvl, core.Program{core.Forward}, o)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !final.Complete {
		t.Errorf("expected facing down to reach the finish, log: %v", final.Log)
	}
}

func TestElapsedIsMeasuredFromStart(t *testing.T) {
	lvl := mustLevel(t, "S.F")

	var frames []*core.State
	o := opts()
	o.Observer = func(s *core.State) { frames = append(frames, s) }

	final, err := core.Run(lvl, core.Program{core.Forward, core.Forward}, o)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if frames[0].Elapsed != 0 {
		t.Errorf("expected zero elapsed on the initial state, got %v", frames[0].Elapsed)
	}
	for i := 1; i < len(frames); i++ {
		if frames[i].Elapsed < frames[i-1].Elapsed {
			t.Errorf("elapsed went backwards at frame %d", i)
		}
	}
	if final.Elapsed != 3*time.Millisecond {
		t.Errorf("expected 3ms elapsed, got %v", final.Elapsed)
	}
}

func TestExplicitStartTime(t *testing.T) {
	lvl := mustLevel(t, "SF")
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	o := opts()
	o.Start = start.Add(-time.Second)
	o.Clock = func() time.Time { return start }

	final, err := core.Run(lvl, core.Program{core.Forward}, o)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if final.Elapsed != time.Second {
		t.Errorf("expected elapsed from the given start, got %v", final.Elapsed)
	}
}

func TestFinishIsIdempotent(t *testing.T) {
	lvl := mustLevel(t, "S.F")
	e, err := core.NewExecution(lvl, core.Program{core.Forward}, opts())
	if err != nil {
		t.Fatalf("NewExecution failed: %v", err)
	}
	for !e.Done() {
		e.Next()
	}

	first := e.Finish()
	second := e.Finish()
	if first != second {
		t.Error("Finish returned a different state on the second call")
	}
	if n := len(second.Log); n != 3 {
		t.Errorf("expected closing line added once, log has %d lines", n)
	}
	if _, ok := e.Next(); ok {
		t.Error("Next advanced a finished execution")
	}
}

func TestStatesIterator(t *testing.T) {
	lvl := mustLevel(t, "S..F")
	e, err := core.NewExecution(lvl, core.Program{core.Loop(5, core.Forward)}, opts())
	if err != nil {
		t.Fatalf("NewExecution failed: %v", err)
	}

	var positions []core.Coord
	for s := range e.States() {
		positions = append(positions, s.Position)
	}

	want := []core.Coord{core.C(0, 0), core.C(1, 0), core.C(2, 0), core.C(3, 0)}
	if diff := cmp.Diff(want, positions); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
	if !e.Finish().Complete {
		t.Error("expected completion")
	}
}

func TestRunPacedCancel(t *testing.T) {
	lvl := mustLevel(t, "S...F")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var frames []*core.State
	o := opts()
	o.Delay = 20 * time.Millisecond
	o.Observer = func(s *core.State) {
		frames = append(frames, s)
		if s.Actions == 1 {
			cancel()
		}
	}

	prog := core.Program{core.Loop(4, core.Forward)}
	last, err := core.RunPaced(ctx, lvl, prog, o)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(frames) != 2 {
		t.Errorf("expected no frames after cancellation, got %d", len(frames))
	}
	if last.Position != core.C(1, 0) || last.Done() {
		t.Errorf("expected the last running state, got %s", core.RenderStatus(last))
	}
}

func TestRunPacedMatchesRun(t *testing.T) {
	lvl := mustLevel(t, "SkLF")
	prog := core.Program{core.Forward, core.Use, core.Loop(2, core.Forward)}

	want, _ := run(t, lvl, prog)

	o := opts()
	o.Delay = time.Millisecond
	got, err := core.RunPaced(context.Background(), lvl, prog, o)
	if err != nil {
		t.Fatalf("RunPaced failed: %v", err)
	}
	if diff := cmp.Diff(want, got, sameGameplay); diff != "" {
		t.Errorf("paced run ended in %s, want %s:\n%s", core.RenderStatus(got), core.RenderStatus(want), diff)
	}
}

func TestConcurrentRunsAreIndependent(t *testing.T) {
	lvl := mustLevel(t, "SkLF")
	before := lvl.Objects.Clone()
	prog := core.Program{core.Forward, core.Use, core.Forward, core.Forward}

	var wg sync.WaitGroup
	results := make([]*core.State, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := core.Run(lvl, prog, opts())
			if err != nil {
				t.Errorf("run %d: %v", i, err)
				return
			}
			results[i] = s
		}(i)
	}
	wg.Wait()

	for i, s := range results {
		if s == nil || !s.Complete {
			t.Errorf("run %d did not complete", i)
		}
	}
	if diff := cmp.Diff(before, lvl.Objects); diff != "" {
		t.Errorf("level objects were modified by concurrent runs (-before +after):\n%s", diff)
	}
}

func TestResultFromRun(t *testing.T) {
	lvl := mustLevel(t, "S.F")
	prog := core.Program{core.Loop(2, core.Forward)}

	final, _ := run(t, lvl, prog)
	r := core.NewResult(lvl, prog, final)

	if !r.Complete || r.Blocks != 2 || r.Actions != 2 {
		t.Errorf("unexpected result %+v", r)
	}
	if r.Program != "loop 2 [forward]" {
		t.Errorf("unexpected program text %q", r.Program)
	}
	if r.LastLog != core.LogReachedGoal {
		t.Errorf("unexpected last log %q", r.LastLog)
	}
	if r.Reason != "" {
		t.Errorf("complete run has reason %q", r.Reason)
	}
}
