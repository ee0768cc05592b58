// Package core provides the execution engine for the block programming puzzle.
// This package is UI-agnostic and deterministic: given a level and a program
// it produces the same trace of states every time.
package core

import (
	"fmt"
	"strings"
)

// Dir represents the direction the player is facing.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// String returns the lowercase name used in move logs and level files.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Left returns the direction after a quarter turn counter-clockwise.
// up -> left -> down -> right -> up.
func (d Dir) Left() Dir {
	switch d {
	case DirUp:
		return DirLeft
	case DirLeft:
		return DirDown
	case DirDown:
		return DirRight
	case DirRight:
		return DirUp
	default:
		return d
	}
}

// Right returns the direction after a quarter turn clockwise.
func (d Dir) Right() Dir {
	switch d {
	case DirUp:
		return DirRight
	case DirRight:
		return DirDown
	case DirDown:
		return DirLeft
	case DirLeft:
		return DirUp
	default:
		return d
	}
}

// ParseDir parses a direction name (case-insensitive).
func ParseDir(s string) (Dir, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, nil
	case "right":
		return DirRight, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	default:
		return DirRight, fmt.Errorf("unknown direction %q", s)
	}
}

// CellType is the static terrain classification of a grid square.
type CellType uint8

const (
	CellGround CellType = iota
	CellPath
)

// String returns the level-file name of the cell type.
func (c CellType) String() string {
	switch c {
	case CellPath:
		return "path"
	case CellGround:
		return "ground"
	default:
		return "unknown"
	}
}

// ParseCellType parses a terrain name.
func ParseCellType(s string) (CellType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "path", "p", ".":
		return CellPath, true
	case "ground", "g", "#":
		return CellGround, true
	default:
		return CellGround, false
	}
}

// ObjectType is the dynamic overlay entity occupying a grid square.
// The zero value means no object.
type ObjectType uint8

const (
	ObjectNone ObjectType = iota
	ObjectStart
	ObjectFinish
	ObjectKey
	ObjectLock
	ObjectObstacle
)

// String returns the level-file name of the object.
func (o ObjectType) String() string {
	switch o {
	case ObjectNone:
		return "none"
	case ObjectStart:
		return "start"
	case ObjectFinish:
		return "finish"
	case ObjectKey:
		return "key"
	case ObjectLock:
		return "lock"
	case ObjectObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// ParseObjectType parses an object name. Empty strings, "none", "null" and
// "-" all mean no object. "fence" is the older name for a lock.
func ParseObjectType(s string) (ObjectType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "null", "-", "_":
		return ObjectNone, true
	case "start", "s":
		return ObjectStart, true
	case "finish", "f":
		return ObjectFinish, true
	case "key", "k":
		return ObjectKey, true
	case "lock", "fence", "l":
		return ObjectLock, true
	case "obstacle", "o":
		return ObjectObstacle, true
	default:
		return ObjectNone, false
	}
}

// Item is an inventory entry.
type Item string

// ItemKey is the only item the player can currently pick up.
const ItemKey Item = "key"
