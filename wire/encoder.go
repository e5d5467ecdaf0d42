// Package wire implements the transport framing of the event protocol: one
// JSON object per event, carried as a server-sent-events data frame. The
// encoder is stateless and deterministic; the decoder is tolerant of unknown
// future event types so protocol evolution stays additive-only.
package wire

import (
	"encoding/json"

	"github.com/hupe1980/agentwire/core"
)

// Encoder serializes events into transport frames.
type Encoder interface {
	// ContentType reports the MIME type of the frames produced by Encode.
	ContentType() string
	// Encode turns one event into one frame. It is pure and total for
	// well-formed events.
	Encode(ev core.Event) []byte
}

// SSEEncoder frames events as server-sent events: `data: <json>` terminated
// by a blank line. One event per frame, delivered in emission order.
type SSEEncoder struct{}

// NewSSEEncoder returns the canonical SSE encoder.
func NewSSEEncoder() SSEEncoder { return SSEEncoder{} }

// ContentType implements Encoder.
func (SSEEncoder) ContentType() string { return "text/event-stream" }

// Encode implements Encoder.
func (SSEEncoder) Encode(ev core.Event) []byte {
	// Event contains only string fields, so marshaling cannot fail.
	data, _ := json.Marshal(ev)
	frame := make([]byte, 0, len(data)+8)
	frame = append(frame, "data: "...)
	frame = append(frame, data...)
	frame = append(frame, '\n', '\n')
	return frame
}
