package runner

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hupe1980/agentwire/artifact"
	"github.com/hupe1980/agentwire/core"
	"github.com/hupe1980/agentwire/dispatch"
	"github.com/hupe1980/agentwire/model"
	"github.com/hupe1980/agentwire/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(gen core.Generator) *Runner {
	registry := dispatch.NewRegistry(map[string]dispatch.Constructor{
		"author": func(deps dispatch.Deps) core.Pipeline {
			return pipeline.NewAuthor(deps.Generator, deps.Cache)
		},
		"chat": func(deps dispatch.Deps) core.Pipeline {
			return pipeline.NewChat(deps.Generator)
		},
	})
	factory := func(string, string) (core.Generator, error) { return gen, nil }
	d := dispatch.NewDispatcher(registry, artifact.NewInMemoryCache(), factory)
	return New(d)
}

func collect(t *testing.T, events <-chan core.Event) []core.Event {
	t.Helper()
	var out []core.Event
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-deadline:
			t.Fatalf("timed out draining events, got %d so far", len(out))
		}
	}
}

func TestRunner_EnvelopeOrdering(t *testing.T) {
	gen := model.NewMockGenerator()
	gen.AddResponse("hi", "hello there")
	r := newTestRunner(gen)

	events, err := r.Execute(context.Background(), "chat", RunInput{
		ThreadID: "t1",
		Messages: []core.Message{{Role: core.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)

	out := collect(t, events)
	require.NotEmpty(t, out)
	assert.Equal(t, core.EventTypeRunStarted, out[0].Type)
	assert.Equal(t, core.EventTypeRunFinished, out[len(out)-1].Type)

	terminals := 0
	for _, ev := range out {
		if ev.IsTerminal() {
			terminals++
		}
		assert.Equal(t, "t1", ev.ThreadID)
		assert.Equal(t, out[0].RunID, ev.RunID)
	}
	assert.Equal(t, 1, terminals)
}

func TestRunner_UnknownAgentKindNoRunStarted(t *testing.T) {
	r := newTestRunner(model.NewMockGenerator())

	events, err := r.Execute(context.Background(), "telepathy", RunInput{ThreadID: "t1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, dispatch.ErrUnknownAgentKind)
	assert.Nil(t, events, "no stream may exist for a rejected request")
}

func TestRunner_PipelineErrorBecomesSingleRunError(t *testing.T) {
	gen := model.NewMockGenerator()
	gen.FailWith(fmt.Errorf("backend exploded"))
	r := newTestRunner(gen)

	events, err := r.Execute(context.Background(), "chat", RunInput{
		ThreadID: "t1",
		Messages: []core.Message{{Role: core.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)

	out := collect(t, events)
	require.NotEmpty(t, out)
	assert.Equal(t, core.EventTypeRunStarted, out[0].Type)

	last := out[len(out)-1]
	assert.Equal(t, core.EventTypeRunError, last.Type)
	assert.Contains(t, last.Message, "backend exploded")

	errCount := 0
	for _, ev := range out {
		if ev.Type == core.EventTypeRunError {
			errCount++
		}
		assert.NotEqual(t, core.EventTypeRunFinished, ev.Type)
	}
	assert.Equal(t, 1, errCount)
}

func TestRunner_GeneratedRunID(t *testing.T) {
	gen := model.NewMockGenerator()
	r := newTestRunner(gen)

	events, err := r.Execute(context.Background(), "chat", RunInput{
		ThreadID: "t1",
		Messages: []core.Message{{Role: core.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	out := collect(t, events)
	assert.NotEmpty(t, out[0].RunID)

	events, err = r.Execute(context.Background(), "chat", RunInput{
		ThreadID: "t1",
		RunID:    "run-42",
		Messages: []core.Message{{Role: core.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	out = collect(t, events)
	assert.Equal(t, "run-42", out[0].RunID)
}

func TestRunner_ConcurrentRunsAreIndependent(t *testing.T) {
	gen := model.NewMockGenerator()
	gen.AddResponse("alpha", "first answer with several words")
	gen.AddResponse("beta", "second answer with several words")
	r := newTestRunner(gen)

	eventsA, err := r.Execute(context.Background(), "chat", RunInput{
		ThreadID: "ta", RunID: "ra",
		Messages: []core.Message{{Role: core.RoleUser, Content: "alpha"}},
	})
	require.NoError(t, err)
	eventsB, err := r.Execute(context.Background(), "chat", RunInput{
		ThreadID: "tb", RunID: "rb",
		Messages: []core.Message{{Role: core.RoleUser, Content: "beta"}},
	})
	require.NoError(t, err)

	done := make(chan []core.Event, 2)
	go func() { done <- collect(t, eventsA) }()
	go func() { done <- collect(t, eventsB) }()

	for i := 0; i < 2; i++ {
		out := <-done
		require.NotEmpty(t, out)
		runID := out[0].RunID
		for _, ev := range out {
			assert.Equal(t, runID, ev.RunID, "events of one run must not interleave with another")
		}
		assert.Equal(t, core.EventTypeRunStarted, out[0].Type)
		assert.Equal(t, core.EventTypeRunFinished, out[len(out)-1].Type)
	}
}

func TestRunner_CancelStopsForwarding(t *testing.T) {
	gen := model.NewMockGenerator()
	// A long response keeps the pipeline streaming while we cancel.
	long := ""
	for i := 0; i < 2000; i++ {
		long += "word "
	}
	gen.AddResponse("go", long)

	registry := dispatch.NewRegistry(map[string]dispatch.Constructor{
		"chat": func(deps dispatch.Deps) core.Pipeline { return pipeline.NewChat(deps.Generator) },
	})
	d := dispatch.NewDispatcher(registry, artifact.NewInMemoryCache(), func(string, string) (core.Generator, error) { return gen, nil })
	r := New(d, func(o *Options) { o.EventBufferSize = 1 })

	events, err := r.Execute(context.Background(), "chat", RunInput{
		ThreadID: "t1", RunID: "r1",
		Messages: []core.Message{{Role: core.RoleUser, Content: "go"}},
	})
	require.NoError(t, err)

	// Read a few events, then cancel mid-stream.
	for i := 0; i < 3; i++ {
		<-events
	}
	require.NoError(t, r.Cancel("r1"))

	out := collect(t, events)
	for _, ev := range out {
		assert.False(t, ev.Type == core.EventTypeRunFinished, "cancelled run must not finish cleanly")
	}

	assert.Eventually(t, func() bool { return r.ActiveRuns() == 0 }, time.Second, 10*time.Millisecond)
	assert.Error(t, r.Cancel("r1"), "cancelling a finished run reports an error")
}

func TestRunner_TextSequencesWellFormed(t *testing.T) {
	gen := model.NewMockGenerator()
	gen.AddResponse("Write a haiku", "an old silent pond / a frog jumps into the pond / splash, silence again")
	r := newTestRunner(gen)

	events, err := r.Execute(context.Background(), "author", RunInput{
		ThreadID: "t1",
		Messages: []core.Message{{Role: core.RoleUser, Content: "Write a haiku"}},
	})
	require.NoError(t, err)
	out := collect(t, events)

	assert.Equal(t, core.EventTypeRunStarted, out[0].Type)
	assert.Equal(t, core.EventTypeRunFinished, out[len(out)-1].Type)

	var sawRef bool
	started := map[string]bool{}
	ended := map[string]bool{}
	for _, ev := range out {
		switch ev.Type {
		case core.EventTypeTextMessageStart:
			started[ev.MessageID] = true
		case core.EventTypeTextMessageContent:
			assert.True(t, started[ev.MessageID])
			assert.False(t, ended[ev.MessageID])
		case core.EventTypeTextMessageEnd:
			assert.True(t, started[ev.MessageID])
			ended[ev.MessageID] = true
		case core.EventTypeArtifactRef:
			sawRef = true
			assert.NotEmpty(t, ev.ArtifactID)
		}
	}
	assert.True(t, sawRef, "authoring run must reference the cached artifact")
	assert.Equal(t, started, ended)
}

// stallingGenerator never produces a chunk; it waits for ctx cancellation
// and reports the ctx error, like a hung backend under a deadline.
type stallingGenerator struct{}

func (stallingGenerator) StreamGenerate(ctx context.Context, _ []core.Message) (<-chan string, <-chan error) {
	out := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errCh)
		<-ctx.Done()
		errCh <- ctx.Err()
	}()
	return out, errCh
}

func TestRunner_GenerateTimeoutEndsRunWithRunError(t *testing.T) {
	registry := dispatch.NewRegistry(map[string]dispatch.Constructor{
		"chat": func(deps dispatch.Deps) core.Pipeline { return pipeline.NewChat(deps.Generator) },
	})
	d := dispatch.NewDispatcher(registry, artifact.NewInMemoryCache(), func(string, string) (core.Generator, error) {
		return stallingGenerator{}, nil
	})
	r := New(d, func(o *Options) { o.GenerateTimeout = 50 * time.Millisecond })

	events, err := r.Execute(context.Background(), "chat", RunInput{
		ThreadID: "t1", RunID: "r1",
		Messages: []core.Message{{Role: core.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)

	out := collect(t, events)
	require.NotEmpty(t, out)
	assert.Equal(t, core.EventTypeRunStarted, out[0].Type)

	// A per-call timeout fails the run like any other generation error; it
	// must not be confused with run-level cancellation (which truncates the
	// stream with no terminal at all).
	last := out[len(out)-1]
	assert.Equal(t, core.EventTypeRunError, last.Type)
	assert.Contains(t, last.Message, "deadline exceeded")

	terminals := 0
	for _, ev := range out {
		if ev.IsTerminal() {
			terminals++
		}
		assert.NotEqual(t, core.EventTypeRunFinished, ev.Type)
	}
	assert.Equal(t, 1, terminals)
}
