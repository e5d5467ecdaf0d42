// Package core provides the foundational domain types, interfaces and the
// per-run execution context used by AgentWire. It defines:
//
//   - Events (the typed units of the streamed wire protocol)
//   - Messages (role/content pairs exchanged with the generation capability)
//   - Artifacts (cached content blobs referenced by handle)
//   - RunContext (scoped execution state for a single run)
//   - Pluggable contracts for pipelines, generation, artifact caching and
//     message persistence
//
// The package intentionally keeps implementation concerns (persistence,
// transport, concrete pipelines) out of scope, exposing small interfaces so
// backends can be swapped without touching calling code.
package core
