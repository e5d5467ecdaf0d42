package store

import (
	"context"
	"sync"

	"github.com/hupe1980/agentwire/core"
)

// InMemoryStore is a volatile core.MessageStore keeping messages in a
// process-local map. Safe for concurrent use; returned slices are snapshots
// so callers cannot mutate internal state.
type InMemoryStore struct {
	mu       sync.RWMutex
	messages map[string][]core.Message
}

var _ core.MessageStore = (*InMemoryStore)(nil)

// NewInMemoryStore constructs an empty in-memory message store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{messages: make(map[string][]core.Message)}
}

// SaveMessage appends one message to the thread.
func (s *InMemoryStore) SaveMessage(_ context.Context, threadID, role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[threadID] = append(s.messages[threadID], core.Message{Role: role, Content: content})
	return nil
}

// ListMessages returns a snapshot of the thread's messages in insertion order.
func (s *InMemoryStore) ListMessages(_ context.Context, threadID string) ([]core.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Message, len(s.messages[threadID]))
	copy(out, s.messages[threadID])
	return out, nil
}
