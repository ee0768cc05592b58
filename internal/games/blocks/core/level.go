package core

// Level is an immutable level definition. Runs copy Objects before mutating.
type Level struct {
	Index       int
	Name        string
	Description string
	Actions     []Kind // Actions offered to the player; informational unless enforced
	Terrain     *Terrain
	Objects     *Objects
}

// NewLevel builds a level from row-major matrices and validates it.
func NewLevel(index int, name string, terrain [][]CellType, objects [][]ObjectType) (*Level, error) {
	if len(terrain) == 0 || len(terrain[0]) == 0 {
		return nil, invalid("EMPTY_LEVEL", ErrEmptyLevel, "terrain has no cells")
	}
	h, w := len(terrain), len(terrain[0])
	if len(objects) != h {
		return nil, invalid("DIMENSION_MISMATCH", ErrDimensionMismatch,
			"terrain has %d rows, objects has %d", h, len(objects))
	}

	t := NewTerrain(w, h)
	o := NewObjects(w, h)
	for y := 0; y < h; y++ {
		if len(terrain[y]) != w {
			return nil, invalid("RAGGED_ROWS", ErrRaggedRows,
				"terrain row %d has %d cells, expected %d", y, len(terrain[y]), w)
		}
		if len(objects[y]) != w {
			return nil, invalid("DIMENSION_MISMATCH", ErrDimensionMismatch,
				"objects row %d has %d cells, expected %d", y, len(objects[y]), w)
		}
		for x := 0; x < w; x++ {
			t.Set(C(x, y), terrain[y][x])
			o.Set(C(x, y), objects[y][x])
		}
	}

	lvl := &Level{Index: index, Name: name, Terrain: t, Objects: o}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return lvl, nil
}

// Width returns the number of columns.
func (l *Level) Width() int {
	return l.Terrain.W
}

// Height returns the number of rows.
func (l *Level) Height() int {
	return l.Terrain.H
}

// Validate checks the structural invariants a run depends on:
// equal dimensions and exactly one start placed on a path cell.
func (l *Level) Validate() error {
	if l == nil {
		return invalid("EMPTY_LEVEL", ErrEmptyLevel, "no level")
	}
	if l.Terrain == nil || l.Objects == nil || l.Terrain.W == 0 || l.Terrain.H == 0 {
		return invalid("EMPTY_LEVEL", ErrEmptyLevel, "level %d has no cells", l.Index)
	}
	if l.Terrain.W != l.Objects.W || l.Terrain.H != l.Objects.H {
		return invalid("DIMENSION_MISMATCH", ErrDimensionMismatch,
			"terrain is %dx%d, objects is %dx%d",
			l.Terrain.W, l.Terrain.H, l.Objects.W, l.Objects.H)
	}
	if len(l.Terrain.Cells) != l.Terrain.W*l.Terrain.H || len(l.Objects.Cells) != l.Objects.W*l.Objects.H {
		return invalid("RAGGED_ROWS", ErrRaggedRows, "cell storage does not match %dx%d", l.Terrain.W, l.Terrain.H)
	}

	switch n := l.Objects.Count(ObjectStart); {
	case n == 0:
		return invalid("NO_START", ErrNoStart, "level %d has no start cell", l.Index)
	case n > 1:
		return invalid("MULTIPLE_STARTS", ErrMultipleStarts, "level %d has %d start cells", l.Index, n)
	}

	start, _ := FindStart(l.Objects)
	if l.Terrain.Get(start) != CellPath {
		return invalid("START_OFF_PATH", ErrStartOffPath, "start %s is on %s", start, l.Terrain.Get(start))
	}
	return nil
}

// Allows reports whether the level offers the given action kind.
// A level with no action list allows everything.
func (l *Level) Allows(k Kind) bool {
	if len(l.Actions) == 0 {
		return true
	}
	for _, a := range l.Actions {
		if a == k {
			return true
		}
	}
	return false
}
