// Copyright (c) Openwire Labs. All rights reserved.

package responses

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// responsesPath is the endpoint path relative to the configured base URL.
const responsesPath = "/responses"

// Client calls the Responses API. Use [New] to create one.
//
// A Client is safe for concurrent use; each call holds exactly one network
// operation in flight.
type Client struct {
	tp      transport
	model   string
	handler Handler
}

// New creates a [Client] with the given API key and options.
//
//	client := responses.New(os.Getenv("OPENAI_API_KEY"),
//	    responses.WithModel("gpt-4.1-mini"),
//	)
func New(apiKey string, opts ...Option) *Client {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}
	c := &Client{
		tp:    newHTTPTransport(apiKey, cfg),
		model: cfg.model,
	}
	c.handler = chainMiddleware(c.coreCreate, cfg.middleware...)
	return c
}

// newWithTransport creates a Client with a custom transport (for testing).
func newWithTransport(tp transport, model string) *Client {
	c := &Client{tp: tp, model: model}
	c.handler = c.coreCreate
	return c
}

// Create sends a non-streaming request and returns the complete response.
func (c *Client) Create(ctx context.Context, req *Request) (*Response, error) {
	return c.handler(ctx, req)
}

// coreCreate is the base implementation called by the middleware chain.
func (c *Client) coreCreate(ctx context.Context, req *Request) (*Response, error) {
	payload, err := buildPayload(req, c.model)
	if err != nil {
		return nil, err
	}

	resp, err := c.tp.do(ctx, "POST", responsesPath, payload, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", ErrTransport, err)
	}

	var result Response
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", ErrTransport, err)
	}
	return &result, nil
}

// CreateStream sends a streaming request and returns a [Stream] that yields
// decoded server-sent events and reconstructs the final response.
//
// The returned stream owns the connection: Close it (or drain it via
// [Stream.Final] or [Stream.Text]) on every path, including errors.
// Abandoning the context tears the connection down.
func (c *Client) CreateStream(ctx context.Context, req *Request) (*Stream, error) {
	payload, err := buildPayload(req, c.model)
	if err != nil {
		return nil, err
	}
	payload["stream"] = true

	resp, err := c.tp.do(ctx, "POST", responsesPath, payload, true)
	if err != nil {
		return nil, err
	}

	inner := NewResponseStream[Event](ctx, func(ctx context.Context, ch chan<- Event) error {
		defer resp.Body.Close()

		var dec Decoder
		buf := make([]byte, 8*1024)
		for {
			n, readErr := resp.Body.Read(buf)
			if n > 0 {
				for _, ev := range dec.Feed(buf[:n]) {
					select {
					case ch <- ev:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			}
			if readErr == io.EOF {
				return nil
			}
			if readErr != nil {
				return fmt.Errorf("%w: read event stream: %v", ErrTransport, readErr)
			}
		}
	})

	return NewStream(inner), nil
}
