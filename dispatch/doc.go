// Package dispatch maps agent-kind identifiers to pipeline constructors and
// instantiates the right pipeline for each run. The registry is populated
// once at process start and read-only afterward; the dispatcher is the only
// path by which a pipeline may be constructed, so every agent kind has
// exactly one execution path.
package dispatch
