// Package registry provides a global registry of level packs.
// Packs register themselves in init() functions or at startup from a
// directory, allowing the CLI and SSH server to discover levels without
// hardcoded paths.
package registry

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/vovakirdan/blockbot/internal/games/blocks/levels"
)

// BuiltinID is the identifier of the pack embedded in the binary.
const BuiltinID = "builtin"

// PackInfo contains metadata about a registered pack.
type PackInfo struct {
	ID    string
	Title string
}

// Factory returns a loader for a pack.
type Factory func() *levels.Loader

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

func init() {
	Register(BuiltinID, "Builtin levels", levels.Builtin)
}

// Register adds a pack factory to the registry.
// Panics if a pack with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: pack %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// RegisterDir registers a directory of level files under the given ID.
// The directory must exist; an existing registration with the same ID is an error.
func RegisterDir(id, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("registry: level directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("registry: %s is not a directory", dir)
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		return fmt.Errorf("registry: pack %q already registered", id)
	}
	factories[id] = func() *levels.Loader { return levels.NewLoader(dir) }
	titles[id] = dir
	return nil
}

// Unregister removes a pack. Unknown IDs are ignored.
func Unregister(id string) {
	mu.Lock()
	defer mu.Unlock()

	delete(factories, id)
	delete(titles, id)
}

// List returns information about all registered packs, sorted by ID.
func List() []PackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PackInfo, 0, len(factories))
	for id := range factories {
		result = append(result, PackInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Open returns a fresh loader for the pack with the given ID.
func Open(id string) (*levels.Loader, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown pack %q", id)
	}

	return f(), nil
}

// Load opens a pack and loads all of its valid levels.
func Load(id string) ([]levels.Level, error) {
	loader, err := Open(id)
	if err != nil {
		return nil, err
	}
	return loader.LoadAll()
}

// Exists checks if a pack with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
