// Package agentwire provides a high-level façade over the run coordinator and
// its supporting services (artifact cache, message store, pipeline registry &
// logging) enabling rapid construction of streaming agent backends. Most
// applications interact with this package by:
//  1. Creating an AgentWire via New() (optionally overriding default in-memory services)
//  2. Executing runs asynchronously (Execute) or synchronously (ExecuteSync)
//  3. Serving the result over HTTP via the server package, or consuming the
//     event channel directly
//
// The façade delegates coordination to runner.Runner while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a durable message store, a
// real model provider and a structured logger.
package agentwire

import (
	"context"
	"time"

	"github.com/hupe1980/agentwire/artifact"
	"github.com/hupe1980/agentwire/core"
	"github.com/hupe1980/agentwire/dispatch"
	"github.com/hupe1980/agentwire/logging"
	"github.com/hupe1980/agentwire/model"
	"github.com/hupe1980/agentwire/pipeline"
	"github.com/hupe1980/agentwire/runner"
	"github.com/hupe1980/agentwire/store"
)

// Options configures the AgentWire instance.
type Options struct {
	// Cache stores artifacts produced by authoring runs. Defaults to an
	// in-memory TTL cache.
	Cache core.ArtifactCache

	// Store persists conversation messages per thread. Defaults to an
	// in-memory store.
	Store core.MessageStore

	// Registry maps agent kinds to pipeline constructors. Defaults to the
	// built-in "author" and "chat" pipelines.
	Registry *dispatch.Registry

	// Generators resolves a model backend for a run. Defaults to a factory
	// returning the configured Generator for every model/provider pair.
	Generators dispatch.GeneratorFactory

	// Generator is the model backend used by the default factory. Defaults
	// to a mock generator suitable for tests and local development.
	Generator core.Generator

	// MaxConcurrentRuns caps the number of runs executing at once. This
	// prevents resource exhaustion and provides backpressure.
	MaxConcurrentRuns int64

	// EventBufferSize sets the channel buffer size for event processing.
	// Larger buffers reduce blocking but increase memory usage.
	EventBufferSize int

	// GenerateTimeout bounds a single model generation call.
	GenerateTimeout time.Duration

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AgentWire is the high-level façade aggregating the run coordinator and its services.
type AgentWire struct {
	opts   Options
	runner *runner.Runner
	cache  core.ArtifactCache
	store  core.MessageStore
}

// DefaultRegistry returns the built-in pipeline registry: "author" for
// artifact authoring with intent routing and "chat" for plain conversation.
func DefaultRegistry() *dispatch.Registry {
	return dispatch.NewRegistry(map[string]dispatch.Constructor{
		"author": func(deps dispatch.Deps) core.Pipeline {
			return pipeline.NewAuthor(deps.Generator, deps.Cache)
		},
		"chat": func(deps dispatch.Deps) core.Pipeline {
			return pipeline.NewChat(deps.Generator)
		},
	})
}

// New creates a new AgentWire instance with optional overrides. Any unset
// service is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *AgentWire {
	opts := Options{
		Cache:     artifact.NewInMemoryCache(),
		Store:     store.NewInMemoryStore(),
		Registry:  DefaultRegistry(),
		Generator: model.NewMockGenerator(),
		Logger:    logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Generators == nil {
		gen := opts.Generator
		opts.Generators = func(string, string) (core.Generator, error) {
			return gen, nil
		}
	}

	d := dispatch.NewDispatcher(opts.Registry, opts.Cache, opts.Generators, func(o *dispatch.Options) {
		o.Logger = opts.Logger
	})

	r := runner.New(d, func(o *runner.Options) {
		if opts.MaxConcurrentRuns > 0 {
			o.MaxConcurrentRuns = opts.MaxConcurrentRuns
		}
		if opts.EventBufferSize > 0 {
			o.EventBufferSize = opts.EventBufferSize
		}
		if opts.GenerateTimeout > 0 {
			o.GenerateTimeout = opts.GenerateTimeout
		}
		o.Logger = opts.Logger
	})

	return &AgentWire{opts: opts, runner: r, cache: opts.Cache, store: opts.Store}
}

// Cache exposes the artifact cache for direct access.
func (w *AgentWire) Cache() core.ArtifactCache { return w.cache }

// Store exposes the message store for direct access.
func (w *AgentWire) Store() core.MessageStore { return w.store }

// Runner exposes the underlying run coordinator.
func (w *AgentWire) Runner() *runner.Runner { return w.runner }

// Execute starts an asynchronous run returning the event channel. Resolution
// failures (unknown agent kind) are reported synchronously; once the channel
// is handed out, failures surface as a RUN_ERROR event on it.
func (w *AgentWire) Execute(ctx context.Context, agentKind string, input runner.RunInput) (<-chan core.Event, error) {
	return w.runner.Execute(ctx, agentKind, input)
}

// ExecuteSync is a synchronous helper that drains the event channel and
// returns the collected events.
func (w *AgentWire) ExecuteSync(ctx context.Context, agentKind string, input runner.RunInput) ([]core.Event, error) {
	eventsCh, err := w.runner.Execute(ctx, agentKind, input)
	if err != nil {
		return nil, err
	}

	var events []core.Event
	for {
		select {
		case <-ctx.Done():
			// Context cancelled - return events collected so far
			return events, ctx.Err()

		case event, ok := <-eventsCh:
			if !ok {
				return events, nil
			}
			events = append(events, event)
		}
	}
}
