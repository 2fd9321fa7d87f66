package extract

import (
	"sort"
	"sync"
)

// globalRegistry is the single process-wide registry of shape extractors.
// Shapes register once from init() functions; the table is never mutated
// at extraction time.
var globalRegistry = &registry{
	shapes: make(map[string]ShapeDef),
}

type registry struct {
	mu     sync.RWMutex
	shapes map[string]ShapeDef
}

// Register adds a shape to the global registry.
// Call this from init() functions in shape packages.
func Register(def ShapeDef) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.shapes[def.ID] = def
}

// Shapes returns all registered shapes ordered by ID.
func Shapes() []ShapeDef {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	defs := make([]ShapeDef, 0, len(globalRegistry.shapes))
	for _, def := range globalRegistry.shapes {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// ShapeByID returns a registered shape by its ID.
func ShapeByID(id string) (ShapeDef, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	def, ok := globalRegistry.shapes[id]
	return def, ok
}
