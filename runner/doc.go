// Package runner contains the run coordinator: it resolves the pipeline for
// an incoming request through the dispatcher, drives it, and wraps the
// produced event stream in the run envelope (RUN_STARTED, then exactly one
// of RUN_FINISHED or RUN_ERROR). It is the single point where pipeline
// failures are translated into the terminal error event.
package runner
