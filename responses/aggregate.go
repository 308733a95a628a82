// Copyright (c) Openwire Labs. All rights reserved.

package responses

// aggregator folds a stream's event sequence into the equivalent of the
// non-streaming response. It is an explicit reducer: apply advances the
// state by one event, response reads it out. One aggregator per stream,
// single writer, never shared.
type aggregator struct {
	resp      *Response
	completed bool
}

// maxStreamIndex bounds the output_index/content_index fields taken from the
// wire. An index outside [0, maxStreamIndex] marks the event malformed, and
// it is ignored like any other bad frame.
const maxStreamIndex = 4096

func validIndex(i int) bool { return i >= 0 && i <= maxStreamIndex }

// apply advances the accumulator by one event. Unrecognized event types are
// ignored. A terminal response.completed (or response.failed) event replaces
// the entire accumulated state with its carried response: the server's final
// object is authoritative over anything assembled incrementally.
func (a *aggregator) apply(ev Event) {
	if a.completed {
		return
	}
	p, err := ev.payload()
	if err != nil {
		return
	}

	switch ev.Type {
	case EventResponseCreated, EventResponseInProgress:
		a.merge(p.Response)

	case EventOutputItemAdded:
		if p.Item == nil || !validIndex(p.OutputIndex) {
			return
		}
		a.ensure()
		a.growOutput(p.OutputIndex)
		a.resp.Output[p.OutputIndex] = *p.Item

	case EventOutputTextDone:
		if !validIndex(p.OutputIndex) || !validIndex(p.ContentIndex) {
			return
		}
		a.ensure()
		a.growOutput(p.OutputIndex)
		item := &a.resp.Output[p.OutputIndex]
		for len(item.Content) <= p.ContentIndex {
			item.Content = append(item.Content, ContentPart{})
		}
		item.Content[p.ContentIndex] = ContentPart{Type: "output_text", Text: p.Text}

	case EventResponseCompleted:
		if p.Response != nil {
			a.resp = p.Response
		}
		a.completed = true

	case EventResponseFailed:
		if p.Response != nil {
			a.resp = p.Response
		}
		a.completed = true
	}
}

// merge folds a created/in_progress response snapshot into the accumulator
// without discarding already-inserted output items.
func (a *aggregator) merge(r *Response) {
	if r == nil {
		return
	}
	if a.resp == nil {
		a.resp = r
		return
	}
	output := a.resp.Output
	if len(r.Output) > 0 {
		output = r.Output
	}
	cp := *r
	cp.Output = output
	a.resp = &cp
}

func (a *aggregator) ensure() {
	if a.resp == nil {
		a.resp = &Response{}
	}
}

func (a *aggregator) growOutput(index int) {
	for len(a.resp.Output) <= index {
		a.resp.Output = append(a.resp.Output, OutputItem{})
	}
}

// response returns whatever state has accumulated so far. A stream that
// ended before its terminal event yields partial state, never an error.
func (a *aggregator) response() *Response {
	if a.resp == nil {
		return &Response{}
	}
	return a.resp
}
