// Package artifact contains concrete implementations of core.ArtifactCache.
//
// The canonical ArtifactCache interface lives in the core package to avoid
// dependency cycles and keep domain contracts central. Implementation
// packages like this one provide storage backends that can be swapped
// without touching calling code. The in-memory cache here is the intended
// production backend for single-instance deployments; entries are volatile
// and do not survive process restarts.
package artifact
