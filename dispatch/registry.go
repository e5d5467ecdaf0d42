package dispatch

import (
	"maps"
	"sort"

	"github.com/hupe1980/agentwire/core"
	"github.com/hupe1980/agentwire/logging"
)

// Deps bundles the collaborators handed to a pipeline constructor. A fresh
// Deps value is built per resolution so pipelines never share generator
// state across runs; the cache is the one intentionally shared resource.
type Deps struct {
	Generator core.Generator
	Cache     core.ArtifactCache
	Logger    logging.Logger
}

// Constructor builds a fresh pipeline instance for one run.
type Constructor func(deps Deps) core.Pipeline

// Registry is the immutable mapping from agent kind to pipeline constructor.
// It is constructed once during initialization and passed by reference;
// there is deliberately no way to add entries afterward.
type Registry struct {
	constructors map[string]Constructor
}

// NewRegistry copies entries into a read-only registry. Agent kinds are
// unique by construction (map keys).
func NewRegistry(entries map[string]Constructor) *Registry {
	constructors := make(map[string]Constructor, len(entries))
	maps.Copy(constructors, entries)
	return &Registry{constructors: constructors}
}

// Lookup returns the constructor registered for kind.
func (r *Registry) Lookup(kind string) (Constructor, bool) {
	ctor, ok := r.constructors[kind]
	return ctor, ok
}

// Kinds returns the registered agent kinds in sorted order.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.constructors))
	for k := range r.constructors {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
