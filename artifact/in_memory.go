package artifact

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hupe1980/agentwire/core"
)

// DefaultTTL is the entry lifetime applied when no override is configured.
const DefaultTTL = 24 * time.Hour

// Options configures the in-memory cache.
type Options struct {
	// TTL is the lifetime granted to entries on creation and refreshed on
	// update (sliding expiration).
	TTL time.Duration
}

// InMemoryCache is a process-local core.ArtifactCache keeping one current
// snapshot per artifact id under a single coarse-grained mutex. The access
// pattern is point lookups and updates keyed by id, so one lock is enough.
// Expired entries are dropped lazily on access and in bulk by Sweep.
// Snapshots are copied on read so callers cannot mutate internal state.
type InMemoryCache struct {
	mu      sync.Mutex
	entries map[string]*core.Artifact
	ttl     time.Duration

	// now is swapped in tests to control expiry.
	now func() time.Time
}

// Compile-time interface assertion.
var _ core.ArtifactCache = (*InMemoryCache)(nil)

// NewInMemoryCache returns an empty cache with optional overrides.
func NewInMemoryCache(optFns ...func(o *Options)) *InMemoryCache {
	opts := Options{TTL: DefaultTTL}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &InMemoryCache{
		entries: make(map[string]*core.Artifact),
		ttl:     opts.TTL,
		now:     time.Now,
	}
}

// Create stores content under a fresh unique id and returns the id. The
// entry expires TTL from now unless refreshed by Update.
func (c *InMemoryCache) Create(content, threadID, title, language string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	id := core.NewID()
	c.entries[id] = &core.Artifact{
		ID:        id,
		ThreadID:  threadID,
		Title:     title,
		Content:   content,
		Language:  language,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}
	return id, nil
}

// Get returns a copy of the current snapshot, or ErrNotFound if the entry is
// absent or past its expiry. Expired entries are removed on the spot.
func (c *InMemoryCache) Get(id string) (*core.Artifact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, err := c.liveEntryLocked(id)
	if err != nil {
		return nil, err
	}
	cp := *entry
	return &cp, nil
}

// Update replaces the stored content in place, keeping the same id and
// sliding the expiry out to now+TTL.
func (c *InMemoryCache) Update(id, content string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, err := c.liveEntryLocked(id)
	if err != nil {
		return err
	}
	entry.Content = content
	entry.ExpiresAt = c.now().Add(c.ttl)
	return nil
}

// Delete removes the entry for id, or returns ErrNotFound.
func (c *InMemoryCache) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.liveEntryLocked(id); err != nil {
		return err
	}
	delete(c.entries, id)
	return nil
}

// ListByThread returns copies of all live entries owned by threadID, ordered
// by creation time for stable output.
func (c *InMemoryCache) ListByThread(threadID string) ([]core.Artifact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	out := []core.Artifact{}
	for id, entry := range c.entries {
		if entry.Expired(now) {
			delete(c.entries, id)
			continue
		}
		if entry.ThreadID == threadID {
			out = append(out, *entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Sweep removes all expired entries and returns how many were removed.
func (c *InMemoryCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for id, entry := range c.entries {
		if entry.Expired(now) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored entries, expired or not.
func (c *InMemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// StartSweeper runs Sweep every interval until ctx is cancelled. Lazy expiry
// on access already keeps reads correct; the timer only reclaims memory for
// entries nobody touches anymore.
func (c *InMemoryCache) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Sweep()
			}
		}
	}()
}

// liveEntryLocked returns the entry for id if it exists and has not expired,
// evicting it otherwise. Caller must hold the mutex.
func (c *InMemoryCache) liveEntryLocked(id string) (*core.Artifact, error) {
	entry, ok := c.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if entry.Expired(c.now()) {
		delete(c.entries, id)
		return nil, ErrNotFound
	}
	return entry, nil
}
