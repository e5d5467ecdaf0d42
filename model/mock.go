package model

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hupe1980/agentwire/core"
)

// MockGenerator is a lightweight in-memory core.Generator useful for tests,
// examples and offline development. Responses are deterministic: a canned
// completion registered for the latest user message, or a stable fallback
// derived from it. Output is streamed word by word to exercise consumers'
// incremental paths.
type MockGenerator struct {
	mu        sync.RWMutex
	responses map[string]string
	err       error
}

var _ core.Generator = (*MockGenerator)(nil)

// NewMockGenerator constructs an empty MockGenerator.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{responses: make(map[string]string)}
}

// AddResponse registers a canned completion for an input prompt.
func (m *MockGenerator) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// FailWith makes every subsequent StreamGenerate call fail with err.
func (m *MockGenerator) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// StreamGenerate implements core.Generator; emits word chunks of the canned
// completion for the latest user message.
func (m *MockGenerator) StreamGenerate(ctx context.Context, messages []core.Message) (<-chan string, <-chan error) {
	out := make(chan string, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		m.mu.RLock()
		failure := m.err
		full := m.responses[latestUserContent(messages)]
		m.mu.RUnlock()

		if failure != nil {
			errCh <- failure
			return
		}
		if len(messages) == 0 {
			errCh <- fmt.Errorf("no messages provided")
			return
		}
		if full == "" {
			full = fmt.Sprintf("Mock response to: %s", latestUserContent(messages))
		}

		words := strings.SplitAfter(full, " ")
		for _, w := range words {
			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			case out <- w:
			}
		}
	}()

	return out, errCh
}

func latestUserContent(messages []core.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == core.RoleUser {
			return messages[i].Content
		}
	}
	if len(messages) > 0 {
		return messages[len(messages)-1].Content
	}
	return ""
}
