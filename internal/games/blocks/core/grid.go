package core

// Terrain is the static cell layer of a level.
// Cells are stored in row-major order: index = y*W + x.
type Terrain struct {
	W     int
	H     int
	Cells []CellType
}

// NewTerrain creates a terrain of the given size with every cell set to ground.
func NewTerrain(w, h int) *Terrain {
	return &Terrain{W: w, H: h, Cells: make([]CellType, w*h)}
}

// InBounds returns true if the coordinate is within the terrain.
func (t *Terrain) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < t.W && c.Y >= 0 && c.Y < t.H
}

// Get returns the cell type at c, or ground when out of bounds.
func (t *Terrain) Get(c Coord) CellType {
	if !t.InBounds(c) {
		return CellGround
	}
	return t.Cells[c.Y*t.W+c.X]
}

// Set changes the cell type at c. Out-of-bounds writes are ignored.
func (t *Terrain) Set(c Coord, cell CellType) {
	if t.InBounds(c) {
		t.Cells[c.Y*t.W+c.X] = cell
	}
}

// Objects is the object overlay of a level.
// Runs never mutate an Objects value in place once it has been shared;
// they Clone it first (copy-on-write).
type Objects struct {
	W     int
	H     int
	Cells []ObjectType
}

// NewObjects creates an empty object layer.
func NewObjects(w, h int) *Objects {
	return &Objects{W: w, H: h, Cells: make([]ObjectType, w*h)}
}

// InBounds returns true if the coordinate is within the layer.
func (o *Objects) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < o.W && c.Y >= 0 && c.Y < o.H
}

// Get returns the object at c, or ObjectNone when out of bounds.
func (o *Objects) Get(c Coord) ObjectType {
	if !o.InBounds(c) {
		return ObjectNone
	}
	return o.Cells[c.Y*o.W+c.X]
}

// Set places an object at c. Out-of-bounds writes are ignored.
func (o *Objects) Set(c Coord, obj ObjectType) {
	if o.InBounds(c) {
		o.Cells[c.Y*o.W+c.X] = obj
	}
}

// Clone returns a deep copy of the layer.
func (o *Objects) Clone() *Objects {
	cells := make([]ObjectType, len(o.Cells))
	copy(cells, o.Cells)
	return &Objects{W: o.W, H: o.H, Cells: cells}
}

// Count returns how many cells hold the given object.
func (o *Objects) Count(obj ObjectType) int {
	n := 0
	for _, c := range o.Cells {
		if c == obj {
			n++
		}
	}
	return n
}

// FindStart scans the layer row by row and returns the first start cell.
func FindStart(objects *Objects) (Coord, error) {
	for y := 0; y < objects.H; y++ {
		for x := 0; x < objects.W; x++ {
			if objects.Get(C(x, y)) == ObjectStart {
				return C(x, y), nil
			}
		}
	}
	return Coord{}, ErrNoStart
}

// IsValidPosition reports whether the player may stand on pos.
// Obstacles can only be entered while jumping; locks can never be entered.
func IsValidPosition(pos Coord, terrain *Terrain, objects *Objects, jumping bool) bool {
	if !terrain.InBounds(pos) {
		return false
	}
	if terrain.Get(pos) != CellPath {
		return false
	}
	switch objects.Get(pos) {
	case ObjectObstacle:
		return jumping
	case ObjectLock:
		return false
	}
	return true
}
