package tui

import (
	"testing"

	"github.com/vovakirdan/blockbot/internal/core"
)

func TestRenderScreenWithoutPalette(t *testing.T) {
	prev := GetTheme()
	SetTheme(Theme{})
	defer SetTheme(prev)

	s := core.NewScreen(6, 2)
	s.DrawTextWithColor(0, 0, "S.k", core.ColorStart)
	s.DrawTextWithColor(3, 0, "#F", core.ColorObstacle)
	s.DrawTextWithColor(0, 1, "done", core.ColorSuccess)

	if got, want := RenderScreen(s), s.String(); got != want {
		t.Errorf("RenderScreen() = %q, want %q", got, want)
	}
}

func TestDefaultThemeCoversBoardRoles(t *testing.T) {
	board := DefaultTheme().Board
	for c := core.ColorText; c <= core.ColorTitle; c++ {
		if _, ok := board[c]; !ok {
			t.Errorf("default theme has no style for role %d", c)
		}
	}
	if _, ok := board[core.ColorDefault]; ok {
		t.Error("default role should render unstyled")
	}
}
