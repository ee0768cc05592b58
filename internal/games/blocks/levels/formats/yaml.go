package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
//
// The grid is given either as glyph rows in Map, or as two matrices of
// whitespace-separated names in Terrain and Objects:
//
//	map:
//	  - "S.o.F"
//
//	terrain:
//	  - path path ground
//	objects:
//	  - start none none
type YAMLLevel struct {
	Index       int      `yaml:"index"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Actions     []string `yaml:"actions,omitempty"`
	Map         []string `yaml:"map,omitempty"`
	Terrain     []string `yaml:"terrain,omitempty"`
	Objects     []string `yaml:"objects,omitempty"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	actions, err := parseActions(yl.Actions)
	if err != nil {
		return Level{}, fmt.Errorf("actions: %w", err)
	}

	level := Level{
		Index:       yl.Index,
		Name:        yl.Name,
		Description: yl.Description,
		Actions:     actions,
	}

	switch {
	case len(yl.Map) > 0:
		if len(yl.Terrain) > 0 || len(yl.Objects) > 0 {
			return Level{}, fmt.Errorf("level %d: map cannot be combined with terrain/objects", yl.Index)
		}
		level.Terrain, level.Objects, err = parseMap(yl.Map)
		if err != nil {
			return Level{}, err
		}
	default:
		if level.Terrain, err = parseTerrainRows(yl.Terrain); err != nil {
			return Level{}, err
		}
		if level.Objects, err = parseObjectRows(yl.Objects); err != nil {
			return Level{}, err
		}
	}

	return level, nil
}
