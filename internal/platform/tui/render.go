package tui

import (
	"strings"

	"github.com/vovakirdan/blockbot/internal/core"
)

// RenderScreen draws a Screen with the current theme's board palette.
// Cells of one role next to each other share a single styled span.
func RenderScreen(s *core.Screen) string {
	rows := make([]string, s.Height())
	for y := range rows {
		rows[y] = renderRow(s, y, theme)
	}
	return strings.Join(rows, "\n")
}

func renderRow(s *core.Screen, y int, t Theme) string {
	var sb strings.Builder
	var span []rune
	role := core.ColorDefault

	flush := func() {
		if len(span) == 0 {
			return
		}
		if style, ok := t.Board[role]; ok {
			sb.WriteString(style.Render(string(span)))
		} else {
			sb.WriteString(string(span))
		}
		span = span[:0]
	}

	for x := range s.Width() {
		cell := s.GetCell(x, y)
		if cell.Color != role {
			flush()
			role = cell.Color
		}
		span = append(span, cell.Rune)
	}
	flush()
	return sb.String()
}
