package core

import "context"

// Conversation roles understood by the generation capability.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role/content pair of a conversation. Messages are the input
// to a run and the unit stored by MessageStore implementations.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MessageStore is the persistence collaborator consulted by the surrounding
// request handler before and after a run. The run core itself never calls it.
type MessageStore interface {
	SaveMessage(ctx context.Context, threadID, role, content string) error
	ListMessages(ctx context.Context, threadID string) ([]Message, error)
}

// Generator is the opaque generation capability consumed by pipelines. It
// yields a sequence of text fragments on the first channel; a failure (at
// most one) arrives on the second. Both channels are closed when generation
// ends. Implementations must honor ctx cancellation.
type Generator interface {
	StreamGenerate(ctx context.Context, messages []Message) (<-chan string, <-chan error)
}
