package agentwire

import (
	"context"
	"testing"

	"github.com/hupe1980/agentwire/core"
	"github.com/hupe1980/agentwire/model"
	"github.com/hupe1980/agentwire/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentWire_AuthoringConversation(t *testing.T) {
	gen := model.NewMockGenerator()
	gen.AddResponse("Write a haiku about rain", "soft rain on the roof")
	gen.AddResponse("Make it sadder", "cold rain on the grave")

	w := New(func(o *Options) {
		o.Generator = gen
	})

	ctx := context.Background()

	events, err := w.ExecuteSync(ctx, "author", runner.RunInput{
		ThreadID: "t1",
		Messages: []core.Message{{Role: core.RoleUser, Content: "Write a haiku about rain"}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, events)

	assert.Equal(t, core.EventTypeRunStarted, events[0].Type)
	assert.Equal(t, core.EventTypeRunFinished, events[len(events)-1].Type)

	var artifactID string
	for _, ev := range events {
		if ev.Type == core.EventTypeArtifactRef {
			artifactID = ev.ArtifactID
		}
	}
	require.NotEmpty(t, artifactID, "authoring run must reference an artifact")

	art, err := w.Cache().Get(artifactID)
	require.NoError(t, err)
	assert.Equal(t, "soft rain on the roof", art.Content)

	// Follow-up edit against the same artifact keeps the handle stable.
	events, err = w.ExecuteSync(ctx, "author", runner.RunInput{
		ThreadID:   "t1",
		ArtifactID: artifactID,
		Messages: []core.Message{
			{Role: core.RoleUser, Content: "Write a haiku about rain"},
			{Role: core.RoleAssistant, Content: "soft rain on the roof"},
			{Role: core.RoleUser, Content: "Make it sadder"},
		},
	})
	require.NoError(t, err)

	var secondID string
	for _, ev := range events {
		if ev.Type == core.EventTypeArtifactRef {
			secondID = ev.ArtifactID
		}
	}
	assert.Equal(t, artifactID, secondID)

	art, err = w.Cache().Get(artifactID)
	require.NoError(t, err)
	assert.Equal(t, "cold rain on the grave", art.Content)
}

func TestAgentWire_ChatRun(t *testing.T) {
	gen := model.NewMockGenerator()
	gen.AddResponse("hello", "hi there")

	w := New(func(o *Options) {
		o.Generator = gen
	})

	events, err := w.ExecuteSync(context.Background(), "chat", runner.RunInput{
		ThreadID: "t1",
		Messages: []core.Message{{Role: core.RoleUser, Content: "hello"}},
	})
	require.NoError(t, err)

	var text string
	for _, ev := range events {
		if ev.Type == core.EventTypeTextMessageContent {
			text += ev.Delta
		}
		assert.NotEqual(t, core.EventTypeArtifactRef, ev.Type)
	}
	assert.Equal(t, "hi there", text)
}

func TestAgentWire_UnknownKindFailsSynchronously(t *testing.T) {
	w := New()

	events, err := w.Execute(context.Background(), "telepathy", runner.RunInput{
		ThreadID: "t1",
		Messages: []core.Message{{Role: core.RoleUser, Content: "hi"}},
	})
	require.Error(t, err)
	assert.Nil(t, events)
}
