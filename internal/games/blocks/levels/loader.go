// Package levels provides level loading functionality for the block puzzle.
// This package depends on core but core does not depend on levels.
package levels

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/blockbot/internal/games/blocks/core"
	"github.com/vovakirdan/blockbot/internal/games/blocks/levels/formats"
)

// Level is a validated level together with the file it came from.
type Level struct {
	*core.Level
	FilePath string
}

// Problem describes a level file that could not be loaded.
type Problem struct {
	FilePath string
	Err      error
}

func (p Problem) Error() string {
	return fmt.Sprintf("%s: %v", p.FilePath, p.Err)
}

// Loader handles loading levels from a directory tree.
type Loader struct {
	Root string
	fsys fs.FS
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// NewFSLoader creates a loader over an fs.FS. name is used in file paths
// and error messages.
func NewFSLoader(fsys fs.FS, name string) *Loader {
	return &Loader{Root: name, fsys: fsys}
}

// LoadAll recursively scans and loads all level files. Invalid files are
// skipped; use Check to report them.
// Returns levels sorted by index for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	levels, _, err := l.scan()
	return levels, err
}

// Check loads every level file and returns the ones that failed.
func (l *Loader) Check() ([]Level, []Problem, error) {
	return l.scan()
}

func (l *Loader) scan() ([]Level, []Problem, error) {
	var levels []Level
	var problems []Problem

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		loaded, err := l.loadPath(p)
		if err != nil {
			problems = append(problems, Problem{FilePath: l.display(p), Err: err})
			return nil
		}

		levels = append(levels, loaded...)
		return nil
	})

	if err != nil {
		return nil, nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by index, then file, for determinism
	sort.SliceStable(levels, func(i, j int) bool {
		if levels[i].Index != levels[j].Index {
			return levels[i].Index < levels[j].Index
		}
		return levels[i].FilePath < levels[j].FilePath
	})

	return levels, problems, nil
}

// LoadFile loads every level in a single file, relative to the loader root.
func (l *Loader) LoadFile(p string) ([]Level, error) {
	return l.loadPath(path.Clean(strings.TrimPrefix(p, "/")))
}

func (l *Loader) loadPath(p string) ([]Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", l.display(p), err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", l.display(p), err)
	}

	out := make([]Level, 0, len(parsed))
	for _, pl := range parsed {
		lvl, err := pl.ToCore()
		if err != nil {
			return nil, fmt.Errorf("level %d in %s: %w", pl.Index, l.display(p), err)
		}
		out = append(out, Level{Level: lvl, FilePath: l.display(p)})
	}
	return out, nil
}

// LoadByIndex loads a specific level by index.
func (l *Loader) LoadByIndex(index int) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.Index == index {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("level not found: %d", index)
}

// ListIndexes returns all level indexes in sorted order.
func (l *Loader) ListIndexes() ([]int, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	indexes := make([]int, len(levels))
	for i, lvl := range levels {
		indexes[i] = lvl.Index
	}
	return indexes, nil
}

func (l *Loader) display(p string) string {
	return path.Join(l.Root, p)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) ([]formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		lvl, err := formats.ParseYAML(data)
		if err != nil {
			return nil, err
		}
		return []formats.Level{lvl}, nil
	case ".json":
		return formats.ParseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
}
