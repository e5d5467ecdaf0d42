package core

import "time"

// Artifact is a cached, named content blob referenced by handle instead of
// being retransmitted on every turn. A single current snapshot is kept per
// id; updates replace content in place without retaining history.
type Artifact struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"threadId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Language  string    `json:"language,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the artifact's lifetime has elapsed at now.
func (a Artifact) Expired(now time.Time) bool { return now.After(a.ExpiresAt) }

// ArtifactCache is the server-side store of artifacts with per-entry TTL and
// thread grouping. Implementations must be safe for concurrent use; no
// operation may observe a half-written entry.
//
// Absence is not a failure: Get, Update and Delete return the implementation
// package's not-found sentinel for missing or expired entries, and callers
// are expected to fall back (typically to creating a fresh entry) rather
// than abort.
type ArtifactCache interface {
	// Create stores content under a fresh unique id and returns the id.
	Create(content, threadID, title, language string) (string, error)
	// Get returns the current snapshot for id.
	Get(id string) (*Artifact, error)
	// Update replaces the content stored under id, keeping the same id.
	Update(id, content string) error
	// Delete removes the entry for id.
	Delete(id string) error
	// ListByThread returns current snapshots owned by threadID.
	ListByThread(threadID string) ([]Artifact, error)
	// Sweep removes all expired entries and returns how many were removed.
	Sweep() int
}
