package pipeline

import "github.com/hupe1980/agentwire/core"

// ChatOptions configures the chat pipeline.
type ChatOptions struct {
	// Instructions is an optional system prompt prepended to the
	// conversation.
	Instructions string
}

// Chat is the plain conversational pipeline: one streamed text message per
// run, no artifact involvement.
type Chat struct {
	generator core.Generator
	opts      ChatOptions
}

var _ core.Pipeline = (*Chat)(nil)

// NewChat constructs the chat pipeline with optional overrides.
func NewChat(generator core.Generator, optFns ...func(o *ChatOptions)) *Chat {
	opts := ChatOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Chat{generator: generator, opts: opts}
}

// Name implements core.Pipeline.
func (c *Chat) Name() string { return "chat" }

// Run implements core.Pipeline.
func (c *Chat) Run(rc *core.RunContext) error {
	messages := rc.Messages
	if c.opts.Instructions != "" {
		messages = append([]core.Message{{Role: core.RoleSystem, Content: c.opts.Instructions}}, messages...)
	}
	_, err := streamText(rc, c.generator, messages, core.NewID())
	return err
}
