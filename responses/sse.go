// Copyright (c) Openwire Labs. All rights reserved.

package responses

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Decoder is an incremental server-sent-events decoder. Feed it raw chunks
// as they arrive from the transport; it yields complete events and carries
// a trailing partial frame between calls. Chunk boundaries are immaterial:
// any split of the same byte stream decodes to the same event sequence.
//
// The only retained state is the partial frame; a Decoder never buffers
// completed frames or event history.
//
// A Decoder is single-owner: one stream, one goroutine, discarded when the
// stream ends.
type Decoder struct {
	buf []byte
}

// Feed appends chunk to the carried partial frame and returns every
// complete event now available, zero or more per call.
//
// Frames missing an "event:" or "data:" line are dropped, as are frames
// whose data payload is not valid JSON; a bad frame never fails the stream.
func (d *Decoder) Feed(chunk []byte) []Event {
	d.buf = append(d.buf, chunk...)

	var events []Event
	for {
		frame, rest, ok := cutFrame(d.buf)
		if !ok {
			return events
		}
		d.buf = rest
		if ev, ok := parseFrame(frame); ok {
			events = append(events, ev)
		}
	}
}

// cutFrame splits the buffer at the first blank-line frame boundary.
func cutFrame(buf []byte) (frame, rest []byte, ok bool) {
	lf := bytes.Index(buf, []byte("\n\n"))
	crlf := bytes.Index(buf, []byte("\r\n\r\n"))

	switch {
	case lf < 0 && crlf < 0:
		return nil, buf, false
	case crlf < 0 || (lf >= 0 && lf < crlf):
		return buf[:lf], buf[lf+2:], true
	default:
		return buf[:crlf], buf[crlf+4:], true
	}
}

// parseFrame extracts the event type and data payload from one frame.
// The event type comes from the "event:" line; the JSON body's own "type"
// field, which historically diverged from it, is ignored.
func parseFrame(frame []byte) (Event, bool) {
	var eventType string
	var dataLines []string

	for _, line := range strings.Split(string(frame), "\n") {
		line = strings.TrimSuffix(line, "\r")
		switch {
		case strings.HasPrefix(line, ":"):
			// comment/keepalive
		case strings.HasPrefix(line, "event:"):
			eventType = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			dataLines = append(dataLines, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}

	if eventType == "" || len(dataLines) == 0 {
		return Event{}, false
	}
	data := []byte(strings.Join(dataLines, "\n"))
	if !json.Valid(data) {
		return Event{}, false
	}
	return Event{Type: eventType, Data: json.RawMessage(data)}, true
}
