// Package server exposes the run coordinator over HTTP. One request opens a
// long-lived response stream carrying the run's events as SSE frames; side
// endpoints read back thread history and cached artifact metadata. The
// handler is also where the persistence collaborator is consulted: the
// incoming user message is saved before the run and the accumulated
// assistant text after it.
package server
