// Package store contains implementations of core.MessageStore, the
// conversation persistence collaborator consulted by the request handler
// before and after a run. The run core never touches it directly. The
// SQLite backend is the durable choice for single-instance deployments; the
// in-memory backend serves tests and ephemeral demos.
package store
