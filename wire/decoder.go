package wire

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hupe1980/agentwire/core"
)

var framePrefix = []byte("data: ")

// DecodeFrame parses a single SSE frame back into an Event. Events whose
// type is unknown to this build are returned as-is rather than rejected, so
// older clients keep working against newer servers.
func DecodeFrame(frame []byte) (core.Event, error) {
	payload := bytes.TrimSpace(frame)
	payload = bytes.TrimPrefix(payload, framePrefix)

	var ev core.Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return core.Event{}, fmt.Errorf("malformed frame: %w", err)
	}
	if ev.Type == "" {
		return core.Event{}, fmt.Errorf("frame missing event type")
	}
	return ev, nil
}

// Decoder incrementally reads SSE frames from a stream. It is the client
// half of the protocol, used by Go consumers and by tests that assert on
// full response streams.
type Decoder struct {
	scanner *bufio.Scanner
}

// NewDecoder wraps r for frame-by-frame reading.
func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Decoder{scanner: sc}
}

// Next returns the next event on the stream, or io.EOF when the stream ends.
func (d *Decoder) Next() (core.Event, error) {
	for d.scanner.Scan() {
		line := bytes.TrimSpace(d.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		return DecodeFrame(line)
	}
	if err := d.scanner.Err(); err != nil {
		return core.Event{}, err
	}
	return core.Event{}, io.EOF
}

// DecodeAll drains the stream, returning every event in order.
func (d *Decoder) DecodeAll() ([]core.Event, error) {
	var events []core.Event
	for {
		ev, err := d.Next()
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
}
