package core

import (
	"fmt"
	"strings"
)

// Glyphs used by the ASCII renderer and accepted by compact level rows.
const (
	GlyphPath     = '.'
	GlyphGround   = '#'
	GlyphStart    = 'S'
	GlyphFinish   = 'F'
	GlyphKey      = 'k'
	GlyphLock     = 'L'
	GlyphObstacle = 'o'
)

// PlayerGlyph returns the arrow drawn for a player facing d.
func PlayerGlyph(d Dir) rune {
	switch d {
	case DirUp:
		return '^'
	case DirRight:
		return '>'
	case DirDown:
		return 'v'
	case DirLeft:
		return '<'
	default:
		return '@'
	}
}

// CellGlyph returns the glyph for a cell when the player is not on it.
func CellGlyph(cell CellType, obj ObjectType) rune {
	switch obj {
	case ObjectStart:
		return GlyphStart
	case ObjectFinish:
		return GlyphFinish
	case ObjectKey:
		return GlyphKey
	case ObjectLock:
		return GlyphLock
	case ObjectObstacle:
		return GlyphObstacle
	}
	if cell == CellPath {
		return GlyphPath
	}
	return GlyphGround
}

// RenderASCII renders the level with the state's objects and player.
// A nil state renders the level as loaded, with the player on the start cell.
//
// Output format:
//
//	#####
//	#>.F#
//	#####
func RenderASCII(level *Level, s *State) string {
	objects := level.Objects
	player := Coord{X: -1, Y: -1}
	facing := DefaultFacing
	if s != nil {
		objects = s.Objects
		player = s.Position
		facing = s.Facing
	} else if start, err := FindStart(level.Objects); err == nil {
		player = start
	}

	var sb strings.Builder
	for y := 0; y < level.Height(); y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < level.Width(); x++ {
			c := C(x, y)
			if c == player {
				sb.WriteRune(PlayerGlyph(facing))
				continue
			}
			sb.WriteRune(CellGlyph(level.Terrain.Get(c), objects.Get(c)))
		}
	}
	return sb.String()
}

// RenderStatus renders a one-line summary of a state.
func RenderStatus(s *State) string {
	status := "running"
	switch {
	case s.Complete:
		status = "complete"
	case s.Failed:
		status = "failed"
	}
	return fmt.Sprintf("pos=%s facing=%s keys=%d actions=%d status=%s",
		s.Position, s.Facing, s.CountItem(ItemKey), s.Actions, status)
}

// ParseGlyph is the inverse of CellGlyph. Object glyphs imply a path cell.
// Player arrows are not accepted.
func ParseGlyph(r rune) (CellType, ObjectType, bool) {
	switch r {
	case GlyphPath:
		return CellPath, ObjectNone, true
	case GlyphGround, ' ':
		return CellGround, ObjectNone, true
	case GlyphStart:
		return CellPath, ObjectStart, true
	case GlyphFinish:
		return CellPath, ObjectFinish, true
	case GlyphKey:
		return CellPath, ObjectKey, true
	case GlyphLock:
		return CellPath, ObjectLock, true
	case GlyphObstacle:
		return CellPath, ObjectObstacle, true
	default:
		return CellGround, ObjectNone, false
	}
}
