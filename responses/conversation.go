// Copyright (c) Openwire Labs. All rights reserved.

package responses

import (
	"context"
	"sync"
)

// Conversation chains requests through the service's conversation state:
// each Send sets previous_response_id from the last response, so prior
// context never has to be resent. The prior response's model carries
// forward unless a request overrides it.
type Conversation struct {
	mu     sync.Mutex
	client *Client
	lastID string
	model  string
}

// NewConversation creates an empty conversation bound to the client.
func (c *Client) NewConversation() *Conversation {
	return &Conversation{client: c}
}

// Send issues the request as the conversation's next turn and records the
// resulting response as the new continuation point.
func (conv *Conversation) Send(ctx context.Context, req *Request) (*Response, error) {
	conv.mu.Lock()
	next := *req
	if conv.lastID != "" {
		next.PreviousResponseID = conv.lastID
	}
	if next.Model == "" {
		next.Model = conv.model
	}
	conv.mu.Unlock()

	resp, err := conv.client.Create(ctx, &next)
	if err != nil {
		return nil, err
	}

	conv.mu.Lock()
	conv.lastID = resp.ID
	conv.model = resp.Model
	conv.mu.Unlock()

	return resp, nil
}

// LastResponseID returns the ID the next Send will chain to, or empty for a
// fresh conversation.
func (conv *Conversation) LastResponseID() string {
	conv.mu.Lock()
	defer conv.mu.Unlock()
	return conv.lastID
}
