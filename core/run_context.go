package core

import (
	"context"
	"time"

	"github.com/hupe1980/agentwire/logging"
)

// RunContext carries the ephemeral execution scope of a single run. It is
// created at request entry, passed to the selected pipeline's Run method and
// discarded after the run's terminal event is emitted. It aggregates:
//
//   - The ambient cancellation Context
//   - Correlation identifiers (ThreadID, RunID)
//   - The run input (ordered messages, optional artifact handle, routing hint)
//   - The emission channel consumed by the run coordinator and a scoped
//     logger
//
// A RunContext is owned by exactly one pipeline invocation and is not safe
// for concurrent use.
type RunContext struct {
	Context    context.Context
	ThreadID   string
	RunID      string
	Messages   []Message
	ArtifactID string
	Hint       string

	// GenerateTimeout bounds each individual generation call. Zero means no
	// bound beyond the run context itself.
	GenerateTimeout time.Duration

	Emit   chan<- Event
	Logger logging.Logger
}

// NewRunContext constructs a RunContext bound to the given run.
func NewRunContext(
	ctx context.Context,
	threadID, runID string,
	messages []Message,
	emit chan<- Event,
	logger logging.Logger,
) *RunContext {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &RunContext{
		Context:  ctx,
		ThreadID: threadID,
		RunID:    runID,
		Messages: messages,
		Emit:     emit,
		Logger:   logger,
	}
}

// Done returns a channel closed when the run is cancelled.
func (rc *RunContext) Done() <-chan struct{} { return rc.Context.Done() }

// Err returns the cancellation error (if any) from the underlying context.
func (rc *RunContext) Err() error { return rc.Context.Err() }

// EmitEvent forwards ev to the run coordinator, respecting cancellation.
func (rc *RunContext) EmitEvent(ev Event) error {
	select {
	case <-rc.Context.Done():
		return rc.Context.Err()
	case rc.Emit <- ev:
		return nil
	}
}

// LatestUserMessage returns the content of the most recent user message, or
// the last message of any role if no user message exists.
func (rc *RunContext) LatestUserMessage() string {
	for i := len(rc.Messages) - 1; i >= 0; i-- {
		if rc.Messages[i].Role == RoleUser {
			return rc.Messages[i].Content
		}
	}
	if len(rc.Messages) > 0 {
		return rc.Messages[len(rc.Messages)-1].Content
	}
	return ""
}

// GenerateContext derives the context for one generation call, applying
// GenerateTimeout when configured. The returned cancel func must always be
// called.
func (rc *RunContext) GenerateContext() (context.Context, context.CancelFunc) {
	if rc.GenerateTimeout > 0 {
		return context.WithTimeout(rc.Context, rc.GenerateTimeout)
	}
	return context.WithCancel(rc.Context)
}
