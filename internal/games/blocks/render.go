package blocks

import (
	"fmt"
	"strings"

	platformcore "github.com/vovakirdan/blockbot/internal/core"
	"github.com/vovakirdan/blockbot/internal/games/blocks/core"
)

const (
	hudHeight    = 4
	footerHeight = 3
	cellW        = 2 // Each grid square is drawn as glyph + space
)

// cellColor returns the color used for a square the player is not on.
func cellColor(cell core.CellType, obj core.ObjectType) platformcore.Color {
	switch obj {
	case core.ObjectStart:
		return platformcore.ColorStart
	case core.ObjectFinish:
		return platformcore.ColorFinish
	case core.ObjectKey:
		return platformcore.ColorKey
	case core.ObjectLock:
		return platformcore.ColorLock
	case core.ObjectObstacle:
		return platformcore.ColorObstacle
	}
	if cell == core.CellPath {
		return platformcore.ColorPath
	}
	return platformcore.ColorGround
}

func playerColor(s *core.State) platformcore.Color {
	switch {
	case s.Complete:
		return platformcore.ColorSuccess
	case s.Failed:
		return platformcore.ColorFailure
	case s.Jumping:
		return platformcore.ColorJump
	default:
		return platformcore.ColorPlayer
	}
}

// BoardSize returns the on-screen size of a level's board including its frame.
func BoardSize(level *core.Level) (w, h int) {
	return level.Width()*cellW + 3, level.Height() + 2
}

// DrawBoard draws level with s's objects and player inside a frame at (x, y).
// A nil state draws the level as loaded.
func DrawBoard(dst *platformcore.Screen, x, y int, level *core.Level, s *core.State) {
	w, h := BoardSize(level)
	dst.DrawBox(platformcore.NewRect(x, y, w, h), platformcore.ColorMuted)

	objects := level.Objects
	player := core.C(-1, -1)
	if s != nil {
		objects = s.Objects
		player = s.Position
	}

	for gy := 0; gy < level.Height(); gy++ {
		for gx := 0; gx < level.Width(); gx++ {
			c := core.C(gx, gy)
			sx := x + 2 + gx*cellW
			sy := y + 1 + gy
			if c == player {
				dst.SetWithColor(sx, sy, core.PlayerGlyph(s.Facing), playerColor(s))
				continue
			}
			cell, obj := level.Terrain.Get(c), objects.Get(c)
			dst.SetWithColor(sx, sy, core.CellGlyph(cell, obj), cellColor(cell, obj))
		}
	}
}

// Render draws the playback to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.err != nil {
		g.renderOverlay(dst, "Cannot start level", g.err.Error())
		return
	}

	bw, bh := BoardSize(g.level)
	area := platformcore.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-footerHeight)
	if bw > area.W || bh > area.H {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	board := area.CenterIn(bw, bh)
	DrawBoard(dst, board.X, board.Y, g.level, g.state)

	g.renderFooter(dst)

	if r, ok := g.Result(); ok {
		title := "Level complete!"
		if !r.Complete {
			title = "Level failed"
		}
		detail := fmt.Sprintf("%d blocks, %d actions", r.Blocks, r.Actions)
		g.renderOverlay(dst, title, detail)
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := fmt.Sprintf(" Level %d: %s", g.level.Index, g.level.Name)
	if g.state != nil {
		hud += fmt.Sprintf(" | Actions: %d | Keys: %d", g.state.Actions, g.state.CountItem(core.ItemKey))
	}
	if g.delay > 0 {
		hud += " | Step: " + g.delay.String()
	} else {
		hud += " | Step: instant"
	}
	if g.paused {
		hud += " | PAUSED"
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorHUD)
	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorMuted)

	program := g.program.String()
	if program == "" {
		program = "(empty program)"
	}
	dst.DrawTextWithColor(0, 2, " "+truncate(program, dst.Width()-2), platformcore.ColorText)
	dst.DrawHLine(0, 3, dst.Width(), '─', platformcore.ColorMuted)
}

func (g *Game) renderFooter(dst *platformcore.Screen) {
	y := dst.Height() - footerHeight
	dst.DrawHLine(0, y, dst.Width(), '─', platformcore.ColorMuted)

	if g.state != nil {
		color := platformcore.ColorText
		line := g.state.LastLog()
		switch {
		case g.state.Complete:
			color = platformcore.ColorSuccess
		case g.state.Failed:
			color = platformcore.ColorFailure
			line = g.state.FailureReason()
		}
		dst.DrawTextWithColor(0, y+1, " "+truncate(line, dst.Width()-2), color)
	}

	controls := " P/Space: Pause | N: Step | +/-: Speed | R: Replay | E: Edit | B: Levels"
	dst.DrawTextWithColor(0, y+2, truncate(controls, dst.Width()), platformcore.ColorMuted)
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, title, detail string) {
	width := platformcore.Max(len(title), len(detail)) + 6
	width = platformcore.Min(width, dst.Width())
	box := dst.Bounds().CenterIn(width, 4)

	for y := box.Y; y < box.Bottom(); y++ {
		dst.DrawHLine(box.X, y, box.W, ' ', platformcore.ColorDefault)
	}
	dst.DrawBox(box, platformcore.ColorText)
	dst.DrawTextCentered(box.Y+1, truncate(title, box.W-2), platformcore.ColorTitle)
	dst.DrawTextCentered(box.Y+2, truncate(detail, box.W-2), platformcore.ColorText)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return strings.TrimRight(string(r[:n-1]), " ") + "…"
}
