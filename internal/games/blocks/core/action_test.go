package core_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vovakirdan/blockbot/internal/games/blocks/core"
)

func TestParseKind(t *testing.T) {
	tests := map[string]core.Kind{
		"forward":    core.KindForward,
		"Forward":    core.KindForward,
		"turnLeft":   core.KindTurnLeft,
		"turn-left":  core.KindTurnLeft,
		"TURN_RIGHT": core.KindTurnRight,
		"jump":       core.KindJump,
		"use":        core.KindUse,
		"repeat":     core.KindLoop,
	}
	for in, want := range tests {
		got, err := core.ParseKind(in)
		if err != nil {
			t.Errorf("ParseKind(%q) failed: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseKind(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := core.ParseKind("dance"); !errors.Is(err, core.ErrUnknownAction) {
		t.Errorf("expected ErrUnknownAction, got %v", err)
	}
}

func TestParseProgram(t *testing.T) {
	got, err := core.ParseProgram("forward, forward; loop 3 [jump turnLeft] use")
	if err != nil {
		t.Fatalf("ParseProgram failed: %v", err)
	}

	want := core.Program{
		core.Forward,
		core.Forward,
		core.Loop(3, core.Jump, core.TurnLeft),
		core.Use,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("program mismatch (-want +got):\n%s", diff)
	}
}

func TestParseProgramNested(t *testing.T) {
	got, err := core.ParseProgram("repeat 2 (forward loop 2 [turnRight]) loop 1 []")
	if err != nil {
		t.Fatalf("ParseProgram failed: %v", err)
	}

	want := core.Program{
		core.Loop(2, core.Forward, core.Loop(2, core.TurnRight)),
		core.Loop(1),
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("program mismatch (-want +got):\n%s", diff)
	}
}

func TestProgramStringRoundTrip(t *testing.T) {
	prog := core.Program{
		core.TurnRight,
		core.Loop(2, core.Forward, core.Loop(3, core.Jump)),
		core.Use,
	}

	text := prog.String()
	if text != "turnRight loop 2 [forward loop 3 [jump]] use" {
		t.Errorf("unexpected program text %q", text)
	}

	back, err := core.ParseProgram(text)
	if err != nil {
		t.Fatalf("ParseProgram(%q) failed: %v", text, err)
	}
	if diff := cmp.Diff(prog, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseProgramErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		is   error
	}{
		{"unknown action", "forward dance", core.ErrUnknownAction},
		{"zero iterations", "loop 0 [forward]", core.ErrInvalidLoop},
		{"negative iterations", "loop -2 [forward]", core.ErrInvalidLoop},
		{"missing count", "loop [forward]", nil},
		{"missing body", "loop 3 forward", nil},
		{"unterminated", "loop 2 [forward", nil},
		{"stray bracket", "forward ]", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := core.ParseProgram(tt.text)
			if err == nil {
				t.Fatalf("expected error parsing %q", tt.text)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("expected %v, got %v", tt.is, err)
			}
		})
	}
}

func TestParseEmptyProgram(t *testing.T) {
	prog, err := core.ParseProgram("  ,, ")
	if err != nil {
		t.Fatalf("ParseProgram failed: %v", err)
	}
	if len(prog) != 0 {
		t.Errorf("expected empty program, got %v", prog)
	}
}

func TestProgramBlocksAndFlatten(t *testing.T) {
	prog := core.Program{
		core.Forward,
		core.Loop(3, core.Jump, core.TurnLeft),
		core.Use,
	}

	if n := prog.Blocks(); n != 5 {
		t.Errorf("expected 5 blocks, got %d", n)
	}
	if d := prog.Depth(); d != 1 {
		t.Errorf("expected depth 1, got %d", d)
	}

	want := []core.Kind{
		core.KindForward,
		core.KindJump, core.KindTurnLeft,
		core.KindJump, core.KindTurnLeft,
		core.KindJump, core.KindTurnLeft,
		core.KindUse,
	}
	if diff := cmp.Diff(want, prog.Flatten()); diff != "" {
		t.Errorf("flatten mismatch (-want +got):\n%s", diff)
	}
}

func TestProgramValidate(t *testing.T) {
	nested := core.Program{core.Loop(2, core.Loop(2, core.Forward))}

	if err := nested.Validate(1); !errors.Is(err, core.ErrLoopTooDeep) {
		t.Errorf("expected ErrLoopTooDeep at limit 1, got %v", err)
	}
	if err := nested.Validate(2); err != nil {
		t.Errorf("expected depth 2 to pass limit 2, got %v", err)
	}
	if err := nested.Validate(0); err != nil {
		t.Errorf("expected no limit at 0, got %v", err)
	}

	bad := core.Program{core.Forward, core.Loop(2, core.Loop(0, core.Jump))}
	err := bad.Validate(0)
	if !errors.Is(err, core.ErrInvalidLoop) {
		t.Fatalf("expected ErrInvalidLoop, got %v", err)
	}
	var ve core.ValidationError
	if !errors.As(err, &ve) || ve.Code != "INVALID_LOOP" {
		t.Errorf("expected INVALID_LOOP validation error, got %#v", err)
	}
}

func TestNewLoopRejectsNonPositive(t *testing.T) {
	if _, err := core.NewLoop(0, core.Forward); !errors.Is(err, core.ErrInvalidLoop) {
		t.Errorf("expected ErrInvalidLoop, got %v", err)
	}
	step, err := core.NewLoop(2, core.Forward)
	if err != nil {
		t.Fatalf("NewLoop failed: %v", err)
	}
	if step.String() != "loop 2 [forward]" {
		t.Errorf("unexpected step %q", step)
	}
}

func TestCheckAllowed(t *testing.T) {
	lvl := mustLevel(t, "S.F")
	lvl.Actions = []core.Kind{core.KindForward, core.KindTurnLeft}

	if err := (core.Program{core.Forward, core.TurnLeft}).CheckAllowed(lvl); err != nil {
		t.Errorf("expected offered actions to pass, got %v", err)
	}
	if err := (core.Program{core.Jump}).CheckAllowed(lvl); !errors.Is(err, core.ErrActionNotAllowed) {
		t.Errorf("expected ErrActionNotAllowed for jump, got %v", err)
	}
	if err := (core.Program{core.Loop(2, core.Forward)}).CheckAllowed(lvl); !errors.Is(err, core.ErrActionNotAllowed) {
		t.Errorf("expected ErrActionNotAllowed for loop, got %v", err)
	}

	lvl.Actions = append(lvl.Actions, core.KindLoop)
	if err := (core.Program{core.Loop(2, core.Use)}).CheckAllowed(lvl); !errors.Is(err, core.ErrActionNotAllowed) {
		t.Errorf("expected loop body to be checked, got %v", err)
	}

	lvl.Actions = nil
	if err := (core.Program{core.Jump, core.Use}).CheckAllowed(lvl); err != nil {
		t.Errorf("expected a level without an action list to allow everything, got %v", err)
	}
}
