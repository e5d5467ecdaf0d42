// Package openai adapts the OpenAI Chat Completions API (streaming) to the
// core.Generator contract.
package openai

import (
	"context"
	"fmt"

	"github.com/hupe1980/agentwire/core"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Options configures the OpenAI generator. Fields mirror a subset of Chat
// Completion parameters intentionally kept minimal; extend via functional
// options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
	APIKey              string
}

// Generator wraps the OpenAI Chat Completions API behind core.Generator.
type Generator struct {
	client *openai.Client
	opts   Options
}

var _ core.Generator = (*Generator)(nil)

// New creates an OpenAI generator using the official client. The API key
// falls back to the SDK's environment lookup when not set explicitly.
func New(optFns ...func(o *Options)) *Generator {
	opts := defaultOptions(optFns)

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := openai.NewClient(clientOpts...)

	return &Generator{client: &client, opts: opts}
}

// NewFromClient creates an OpenAI generator from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Generator {
	return &Generator{client: client, opts: defaultOptions(optFns)}
}

func defaultOptions(optFns []func(o *Options)) Options {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

// StreamGenerate implements core.Generator by forwarding content deltas from
// the Chat Completions streaming API.
func (g *Generator) StreamGenerate(ctx context.Context, messages []core.Message) (<-chan string, <-chan error) {
	out := make(chan string, 32)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		params := openai.ChatCompletionNewParams{
			Model:               g.opts.Model,
			Messages:            buildMessages(messages),
			Temperature:         openai.Float(g.opts.Temperature),
			MaxCompletionTokens: openai.Int(g.opts.MaxCompletionTokens),
		}

		stream := g.client.Chat.Completions.NewStreaming(ctx, params)
		for stream.Next() {
			chunk := stream.Current()
			for _, choice := range chunk.Choices {
				if choice.Delta.Content == "" {
					continue
				}
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				case out <- choice.Delta.Content:
				}
			}
		}
		if err := stream.Err(); err != nil {
			errCh <- fmt.Errorf("openai streaming: %w", err)
		}
	}()

	return out, errCh
}

// buildMessages converts conversation messages into OpenAI chat messages.
func buildMessages(messages []core.Message) []openai.ChatCompletionMessageParamUnion {
	var out []openai.ChatCompletionMessageParamUnion
	for _, m := range messages {
		if m.Content == "" {
			continue
		}
		switch m.Role {
		case core.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case core.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
