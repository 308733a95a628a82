// Copyright (c) Openwire Labs. All rights reserved.

package responses

import "encoding/json"

// Streaming event types emitted by the Responses API. The decoder takes the
// type from the SSE "event:" line; the "type" field inside the JSON payload
// is never consulted.
const (
	EventResponseCreated    = "response.created"
	EventResponseInProgress = "response.in_progress"
	EventOutputItemAdded    = "response.output_item.added"
	EventOutputTextDelta    = "response.output_text.delta"
	EventOutputTextDone     = "response.output_text.done"
	EventResponseCompleted  = "response.completed"
	EventResponseFailed     = "response.failed"
	EventError              = "error"
)

// Event is one decoded server-sent event. Data is the frame's JSON payload,
// already validated as well-formed JSON by the decoder.
type Event struct {
	Type string
	Data json.RawMessage
}

// eventPayload is the union of fields the aggregator reads from event data.
type eventPayload struct {
	Response     *Response      `json:"response"`
	Item         *OutputItem    `json:"item"`
	OutputIndex  int            `json:"output_index"`
	ContentIndex int            `json:"content_index"`
	Delta        string         `json:"delta"`
	Text         string         `json:"text"`
	Error        *ResponseError `json:"error"`
}

func (e Event) payload() (eventPayload, error) {
	var p eventPayload
	err := json.Unmarshal(e.Data, &p)
	return p, err
}

// DeltaText returns the incremental text carried by a
// response.output_text.delta event. Terminal output_text.done events never
// emit here: their full text duplicates deltas already seen.
func DeltaText(e Event) (string, bool) {
	if e.Type != EventOutputTextDelta {
		return "", false
	}
	p, err := e.payload()
	if err != nil {
		return "", false
	}
	return p.Delta, true
}
