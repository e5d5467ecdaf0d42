package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/hupe1980/agentwire/core"
	"github.com/hupe1980/agentwire/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogger records message strings for assertions.
type captureLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (c *captureLogger) record(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
}

func (c *captureLogger) contains(msg string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.msgs {
		if m == msg {
			return true
		}
	}
	return false
}

func (c *captureLogger) Debug(msg string, _ ...any) { c.record(msg) }
func (c *captureLogger) Info(msg string, _ ...any)  { c.record(msg) }
func (c *captureLogger) Warn(msg string, _ ...any)  { c.record(msg) }
func (c *captureLogger) Error(msg string, _ ...any) { c.record(msg) }

func TestStreamText_LogsGenerationOutcome(t *testing.T) {
	gen := model.NewMockGenerator()
	gen.AddResponse("hi", "hello")
	logger := &captureLogger{}

	emit := make(chan core.Event, 64)
	rc := core.NewRunContext(
		context.Background(),
		"t1", "r1",
		[]core.Message{{Role: core.RoleUser, Content: "hi"}},
		emit, logger,
	)

	_, err := drive(NewChat(gen), rc, emit)
	require.NoError(t, err)
	assert.True(t, logger.contains("generation call completed"))
}

func TestStreamText_LogsGenerationFailure(t *testing.T) {
	gen := model.NewMockGenerator()
	gen.FailWith(fmt.Errorf("model unavailable"))
	logger := &captureLogger{}

	emit := make(chan core.Event, 64)
	rc := core.NewRunContext(
		context.Background(),
		"t1", "r1",
		[]core.Message{{Role: core.RoleUser, Content: "hi"}},
		emit, logger,
	)

	_, err := drive(NewChat(gen), rc, emit)
	require.Error(t, err)
	assert.True(t, logger.contains("generation call failed"))
}

func TestTitleFor(t *testing.T) {
	assert.Equal(t, "Untitled", titleFor(""))
	assert.Equal(t, "Untitled", titleFor("   "))
	assert.Equal(t, "Write a haiku", titleFor("  Write a haiku  "))

	long := titleFor(strings.Repeat("write about clouds ", 10))
	assert.LessOrEqual(t, len(long), 60)
}

func TestTitleFor_TruncatesOnRuneBoundary(t *testing.T) {
	// One leading ASCII byte shifts every following two-byte rune off the
	// truncation offset, so a byte-offset slice would split one in half.
	request := "a" + strings.Repeat("ü", 40)

	title := titleFor(request)
	assert.True(t, utf8.ValidString(title), "truncated title must stay valid UTF-8")
	assert.LessOrEqual(t, len(title), 60)
	assert.NotEmpty(t, title)
}
