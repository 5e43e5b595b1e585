// Package registry provides a global registry for motion source factories.
// Sources register themselves in init() functions, allowing the platform
// to discover and instantiate them by ID from CLI flags.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownSource is returned by Create for unregistered IDs.
var ErrUnknownSource = errors.New("registry: unknown motion source")

// Source produces one raw motion sample per tick.
// Implementations clamp their output to [0, 1].
type Source interface {
	// Name returns the registry ID of the source (e.g., "keyboard").
	Name() string

	// Sample returns the raw motion intensity observed at nowMS.
	Sample(nowMS int64) float64
}

// Options carries the CLI-level knobs a factory may use.
type Options struct {
	Seed       int64   // RNG seed for sources with randomness
	ScriptPath string  // YAML script for the script source
	BurstProb  float64 // burst probability for the noise source
}

// Factory creates a new source instance.
type Factory func(opts Options) (Source, error)

// SourceInfo contains metadata about a registered source.
type SourceInfo struct {
	ID          string
	Description string
}

type entry struct {
	factory     Factory
	description string
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a source factory to the registry.
// Typically called from an init() function.
// Panics if a source with the same ID is already registered.
func Register(id, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: source %q already registered", id))
	}
	entries[id] = entry{factory: f, description: description}
}

// List returns information about all registered sources, sorted by ID.
func List() []SourceInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SourceInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, SourceInfo{ID: id, Description: e.description})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a source by its ID.
func Create(id string, opts Options) (Source, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSource, id)
	}
	src, err := e.factory(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: cannot create source %q: %w", id, err)
	}
	return src, nil
}

// Exists checks if a source with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
