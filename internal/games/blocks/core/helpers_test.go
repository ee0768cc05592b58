package core_test

import (
	"testing"
	"time"

	"github.com/vovakirdan/blockbot/internal/games/blocks/core"
)

// mustLevel builds a level from glyph rows:
// '.' path, '#' ground, S start, F finish, k key, L lock, o obstacle.
// Object glyphs sit on path cells.
func mustLevel(t *testing.T, rows ...string) *core.Level {
	t.Helper()

	terrain := make([][]core.CellType, len(rows))
	objects := make([][]core.ObjectType, len(rows))
	for y, row := range rows {
		for _, r := range row {
			cell, obj, ok := core.ParseGlyph(r)
			if !ok {
				t.Fatalf("bad glyph %q in row %d", r, y)
			}
			terrain[y] = append(terrain[y], cell)
			objects[y] = append(objects[y], obj)
		}
	}

	lvl, err := core.NewLevel(1, "test", terrain, objects)
	if err != nil {
		t.Fatalf("NewLevel failed: %v", err)
	}
	return lvl
}

// fixedClock returns a clock that advances by step on every call.
func fixedClock(step time.Duration) func() time.Time {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func opts() core.Options {
	return core.Options{Facing: core.DirRight, Clock: fixedClock(time.Millisecond)}
}

func run(t *testing.T, lvl *core.Level, prog core.Program) (*core.State, []*core.State) {
	t.Helper()

	var frames []*core.State
	o := opts()
	o.Observer = func(s *core.State) {
		frames = append(frames, s)
	}
	final, err := core.Run(lvl, prog, o)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return final, frames
}
