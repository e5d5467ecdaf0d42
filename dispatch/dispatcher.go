package dispatch

import (
	"errors"
	"fmt"

	"github.com/hupe1980/agentwire/core"
	"github.com/hupe1980/agentwire/logging"
)

var (
	// ErrUnknownAgentKind is returned when no pipeline is registered for the
	// requested agent kind. It is a request-shape problem, surfaced before
	// any run starts, never as a streamed error event.
	ErrUnknownAgentKind = errors.New("unknown agent kind")
)

// GeneratorFactory builds the generation capability for a run from the
// requested model/provider overrides. Empty strings select the configured
// defaults. A factory error is treated as a request-shape problem.
type GeneratorFactory func(model, provider string) (core.Generator, error)

// Options configures the Dispatcher.
type Options struct {
	Logger logging.Logger
}

// Dispatcher resolves agent kinds to freshly constructed pipelines. It holds
// the registry, the shared artifact cache and the generator factory; it has
// no per-run mutable state and is safe for concurrent use.
type Dispatcher struct {
	registry   *Registry
	cache      core.ArtifactCache
	generators GeneratorFactory
	logger     logging.Logger
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(registry *Registry, cache core.ArtifactCache, generators GeneratorFactory, optFns ...func(o *Options)) *Dispatcher {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Dispatcher{
		registry:   registry,
		cache:      cache,
		generators: generators,
		logger:     opts.Logger,
	}
}

// Resolve looks up kind in the registry and constructs a fresh pipeline
// instance using the supplied model/provider overrides. Every call returns
// an independently runnable pipeline; no state is shared between two
// resolutions of the same kind except the artifact cache.
func (d *Dispatcher) Resolve(kind, model, provider string) (core.Pipeline, error) {
	ctor, ok := d.registry.Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgentKind, kind)
	}

	gen, err := d.generators(model, provider)
	if err != nil {
		return nil, fmt.Errorf("build generator: %w", err)
	}

	d.logger.Debug("pipeline resolved", "agent_kind", kind, "model", model, "provider", provider)

	return ctor(Deps{Generator: gen, Cache: d.cache, Logger: d.logger}), nil
}

// Kinds returns the agent kinds this dispatcher can resolve.
func (d *Dispatcher) Kinds() []string { return d.registry.Kinds() }
