package core

import "github.com/google/uuid"

// EventType discriminates the variants of the streamed wire protocol. The
// string values are part of the wire contract shared with non-Go clients and
// must never change.
type EventType string

const (
	// EventTypeRunStarted marks the beginning of a run. Always the first
	// event on a run's stream.
	EventTypeRunStarted EventType = "RUN_STARTED"
	// EventTypeRunFinished marks successful completion of a run.
	EventTypeRunFinished EventType = "RUN_FINISHED"
	// EventTypeRunError marks failed completion of a run. No further events
	// for that run follow.
	EventTypeRunError EventType = "RUN_ERROR"
	// EventTypeTextMessageStart opens a streamed textual message.
	EventTypeTextMessageStart EventType = "TEXT_MESSAGE_START"
	// EventTypeTextMessageContent carries one incremental text fragment.
	EventTypeTextMessageContent EventType = "TEXT_MESSAGE_CONTENT"
	// EventTypeTextMessageEnd closes a streamed textual message.
	EventTypeTextMessageEnd EventType = "TEXT_MESSAGE_END"
	// EventTypeArtifactRef declares that a message concerns a cached
	// artifact, carrying its handle instead of its content.
	EventTypeArtifactRef EventType = "ARTIFACT_REF"
)

// Event is one typed unit of the streamed protocol. It is modeled as a flat
// tagged union: Type selects the variant and the optional fields carry the
// variant-specific payload. Every event carries ThreadID and RunID for
// correlation. After emission an Event should be treated as immutable.
//
// JSON field names follow the cross-SDK wire contract (camelCase) regardless
// of Go naming.
type Event struct {
	Type     EventType `json:"type"`
	ThreadID string    `json:"threadId"`
	RunID    string    `json:"runId"`

	// MessageID ties TEXT_MESSAGE_* events of one streamed message together
	// and links an ARTIFACT_REF to the message it concerns.
	MessageID string `json:"messageId,omitempty"`
	// Delta is the incremental text fragment of a TEXT_MESSAGE_CONTENT event.
	Delta string `json:"delta,omitempty"`
	// Message is the human-readable description of a RUN_ERROR event.
	Message string `json:"message,omitempty"`
	// ArtifactID is the cache handle carried by an ARTIFACT_REF event.
	ArtifactID string `json:"artifactId,omitempty"`
	// Kind categorizes the artifact referenced by an ARTIFACT_REF event.
	Kind string `json:"kind,omitempty"`
	// Language is an optional content hint for an ARTIFACT_REF event.
	Language string `json:"language,omitempty"`
}

// NewRunStartedEvent creates the opening envelope event for a run.
func NewRunStartedEvent(threadID, runID string) Event {
	return Event{Type: EventTypeRunStarted, ThreadID: threadID, RunID: runID}
}

// NewRunFinishedEvent creates the successful terminal event for a run.
func NewRunFinishedEvent(threadID, runID string) Event {
	return Event{Type: EventTypeRunFinished, ThreadID: threadID, RunID: runID}
}

// NewRunErrorEvent creates the failure terminal event for a run.
func NewRunErrorEvent(threadID, runID, message string) Event {
	return Event{Type: EventTypeRunError, ThreadID: threadID, RunID: runID, Message: message}
}

// NewTextMessageStartEvent opens the streamed message identified by messageID.
func NewTextMessageStartEvent(threadID, runID, messageID string) Event {
	return Event{Type: EventTypeTextMessageStart, ThreadID: threadID, RunID: runID, MessageID: messageID}
}

// NewTextMessageContentEvent carries one text fragment of a streamed message.
func NewTextMessageContentEvent(threadID, runID, messageID, delta string) Event {
	return Event{Type: EventTypeTextMessageContent, ThreadID: threadID, RunID: runID, MessageID: messageID, Delta: delta}
}

// NewTextMessageEndEvent closes the streamed message identified by messageID.
func NewTextMessageEndEvent(threadID, runID, messageID string) Event {
	return Event{Type: EventTypeTextMessageEnd, ThreadID: threadID, RunID: runID, MessageID: messageID}
}

// NewArtifactRefEvent links messageID to the cached artifact artifactID.
func NewArtifactRefEvent(threadID, runID, messageID, artifactID, kind, language string) Event {
	return Event{
		Type:       EventTypeArtifactRef,
		ThreadID:   threadID,
		RunID:      runID,
		MessageID:  messageID,
		ArtifactID: artifactID,
		Kind:       kind,
		Language:   language,
	}
}

// IsTerminal reports whether the event ends its run's stream.
func (e Event) IsTerminal() bool {
	return e.Type == EventTypeRunFinished || e.Type == EventTypeRunError
}

// NewID generates a new unique identifier for runs, messages and artifacts.
func NewID() string { return uuid.NewString() }
