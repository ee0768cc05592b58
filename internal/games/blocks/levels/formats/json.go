package formats

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/blockbot/internal/games/blocks/core"
)

// JSONLevel is the levels.json pack entry. A null object means an empty cell.
type JSONLevel struct {
	Index         int         `json:"index"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Actions       []string    `json:"actions"`
	LevelMatrix   [][]string  `json:"levelMatrix"`
	ObjectsMatrix [][]*string `json:"objectsMatrix"`
}

// ParseJSON parses a JSON level pack. The document may be a single level
// object or an array of them.
func ParseJSON(data []byte) ([]Level, error) {
	var entries []JSONLevel

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("json unmarshal: %w", err)
		}
	} else {
		var single JSONLevel
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, fmt.Errorf("json unmarshal: %w", err)
		}
		entries = []JSONLevel{single}
	}

	levels := make([]Level, 0, len(entries))
	for _, e := range entries {
		lvl, err := e.toLevel()
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", e.Index, err)
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}

func (e JSONLevel) toLevel() (Level, error) {
	actions, err := parseActions(e.Actions)
	if err != nil {
		return Level{}, fmt.Errorf("actions: %w", err)
	}

	terrain := make([][]core.CellType, len(e.LevelMatrix))
	for y, row := range e.LevelMatrix {
		for x, name := range row {
			cell, ok := core.ParseCellType(name)
			if !ok {
				return Level{}, fmt.Errorf("levelMatrix[%d][%d]: unknown cell %q", y, x, name)
			}
			terrain[y] = append(terrain[y], cell)
		}
	}

	objects := make([][]core.ObjectType, len(e.ObjectsMatrix))
	for y, row := range e.ObjectsMatrix {
		for x, name := range row {
			var s string
			if name != nil {
				s = *name
			}
			obj, ok := core.ParseObjectType(s)
			if !ok {
				return Level{}, fmt.Errorf("objectsMatrix[%d][%d]: unknown object %q", y, x, s)
			}
			objects[y] = append(objects[y], obj)
		}
	}

	return Level{
		Index:       e.Index,
		Name:        e.Name,
		Description: e.Description,
		Actions:     actions,
		Terrain:     terrain,
		Objects:     objects,
	}, nil
}
