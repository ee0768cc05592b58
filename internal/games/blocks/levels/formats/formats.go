// Package formats provides pluggable level and program file parsers.
package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/blockbot/internal/games/blocks/core"
)

// Level represents a parsed level ready for use.
type Level struct {
	Index       int
	Name        string
	Description string
	Actions     []core.Kind
	Terrain     [][]core.CellType
	Objects     [][]core.ObjectType
}

// ToCore builds and validates the engine level.
func (l *Level) ToCore() (*core.Level, error) {
	lvl, err := core.NewLevel(l.Index, l.Name, l.Terrain, l.Objects)
	if err != nil {
		return nil, err
	}
	lvl.Description = l.Description
	lvl.Actions = l.Actions
	return lvl, nil
}

// FormatExtensions returns supported level file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".json"}
}

func parseActions(names []string) ([]core.Kind, error) {
	kinds := make([]core.Kind, 0, len(names))
	for _, name := range names {
		k, err := core.ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// parseMap converts glyph rows into terrain and object matrices.
func parseMap(rows []string) ([][]core.CellType, [][]core.ObjectType, error) {
	terrain := make([][]core.CellType, len(rows))
	objects := make([][]core.ObjectType, len(rows))
	for y, row := range rows {
		for x, r := range row {
			cell, obj, ok := core.ParseGlyph(r)
			if !ok {
				return nil, nil, fmt.Errorf("map row %d column %d: unknown glyph %q", y, x, r)
			}
			terrain[y] = append(terrain[y], cell)
			objects[y] = append(objects[y], obj)
		}
	}
	return terrain, objects, nil
}

// parseTerrainRows converts whitespace-separated terrain names.
func parseTerrainRows(rows []string) ([][]core.CellType, error) {
	out := make([][]core.CellType, len(rows))
	for y, row := range rows {
		for x, tok := range strings.Fields(row) {
			cell, ok := core.ParseCellType(tok)
			if !ok {
				return nil, fmt.Errorf("terrain row %d column %d: unknown cell %q", y, x, tok)
			}
			out[y] = append(out[y], cell)
		}
	}
	return out, nil
}

// parseObjectRows converts whitespace-separated object names.
func parseObjectRows(rows []string) ([][]core.ObjectType, error) {
	out := make([][]core.ObjectType, len(rows))
	for y, row := range rows {
		for x, tok := range strings.Fields(row) {
			obj, ok := core.ParseObjectType(tok)
			if !ok {
				return nil, fmt.Errorf("objects row %d column %d: unknown object %q", y, x, tok)
			}
			out[y] = append(out[y], obj)
		}
	}
	return out, nil
}
