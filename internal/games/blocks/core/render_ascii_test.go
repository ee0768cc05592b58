package core_test

import (
	"testing"

	"github.com/vovakirdan/blockbot/internal/games/blocks/core"
)

func TestRenderASCII(t *testing.T) {
	lvl := mustLevel(t,
		"#####",
		"#SkF#",
		"#####",
	)

	if got, want := core.RenderASCII(lvl, nil), "#####\n#>kF#\n#####"; got != want {
		t.Errorf("initial render:\n%s\nwant:\n%s", got, want)
	}

	s, _ := core.NewState(lvl, core.DirRight)
	s = core.Apply(s, lvl, core.KindForward)
	s = core.Apply(s, lvl, core.KindTurnLeft)

	if got, want := core.RenderASCII(lvl, s), "#####\n#S^F#\n#####"; got != want {
		t.Errorf("render after pickup:\n%s\nwant:\n%s", got, want)
	}

	want := "pos=(2, 1) facing=up keys=1 actions=2 status=running"
	if got := core.RenderStatus(s); got != want {
		t.Errorf("RenderStatus = %q, want %q", got, want)
	}
}

func TestCellGlyph(t *testing.T) {
	tests := []struct {
		cell core.CellType
		obj  core.ObjectType
		want rune
	}{
		{core.CellPath, core.ObjectNone, core.GlyphPath},
		{core.CellGround, core.ObjectNone, core.GlyphGround},
		{core.CellPath, core.ObjectObstacle, core.GlyphObstacle},
		{core.CellPath, core.ObjectLock, core.GlyphLock},
	}
	for _, tt := range tests {
		if got := core.CellGlyph(tt.cell, tt.obj); got != tt.want {
			t.Errorf("CellGlyph(%s, %s) = %q, want %q", tt.cell, tt.obj, got, tt.want)
		}
	}
}
