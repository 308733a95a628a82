// Copyright (c) Openwire Labs. All rights reserved.

package responses

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openwire-ai/respond/pricing"
)

// Response is a completed Responses API result, either read directly from a
// non-streaming call or reconstructed by draining a [Stream].
type Response struct {
	ID                 string         `json:"id"`
	Object             string         `json:"object,omitempty"`
	CreatedAt          float64        `json:"created_at,omitempty"`
	Status             string         `json:"status"`
	Model              string         `json:"model"`
	Output             []OutputItem   `json:"output"`
	Usage              *Usage         `json:"usage,omitempty"`
	Error              *ResponseError `json:"error,omitempty"`
	PreviousResponseID string         `json:"previous_response_id,omitempty"`
	Instructions       string         `json:"instructions,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`
}

// OutputItem is one element of a response's output list.
type OutputItem struct {
	ID      string        `json:"id,omitempty"`
	Type    string        `json:"type"`
	Status  string        `json:"status,omitempty"`
	Role    string        `json:"role,omitempty"`
	Content []ContentPart `json:"content,omitempty"`

	// Function call fields (Type == "function_call").
	CallID    string `json:"call_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

// ContentPart is one element of an output item's content list.
type ContentPart struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Refusal string `json:"refusal,omitempty"`
}

// Usage holds token accounting for a response.
type Usage struct {
	InputTokens         int                 `json:"input_tokens"`
	OutputTokens        int                 `json:"output_tokens"`
	TotalTokens         int                 `json:"total_tokens"`
	InputTokensDetails  InputTokensDetails  `json:"input_tokens_details"`
	OutputTokensDetails OutputTokensDetails `json:"output_tokens_details"`
}

// InputTokensDetails breaks down input token usage.
type InputTokensDetails struct {
	CachedTokens int `json:"cached_tokens"`
}

// OutputTokensDetails breaks down output token usage.
type OutputTokensDetails struct {
	ReasoningTokens int `json:"reasoning_tokens"`
}

// ResponseError is the error object carried by failed responses.
type ResponseError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (e *ResponseError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("response error (%s): %s", e.Code, e.Message)
	}
	return "response error: " + e.Message
}

// OutputText returns the assistant's text: every output_text entry of every
// assistant message item, joined by newlines across items.
func (r *Response) OutputText() string {
	var texts []string
	for _, item := range r.Output {
		if item.Type != "message" || item.Role != "assistant" {
			continue
		}
		for _, part := range item.Content {
			if part.Type == "output_text" {
				texts = append(texts, part.Text)
			}
		}
	}
	return strings.Join(texts, "\n")
}

// Refusal returns the refusal message if the model refused to answer.
func (r *Response) Refusal() (string, bool) {
	for _, item := range r.Output {
		for _, part := range item.Content {
			if part.Type == "refusal" {
				return part.Refusal, true
			}
		}
	}
	return "", false
}

// FunctionCall is a model-requested function invocation extracted from a
// response. Arguments holds the decoded argument object; if the raw
// arguments string failed to decode, Err records that and Arguments is nil.
type FunctionCall struct {
	Name      string
	CallID    string
	Arguments map[string]any
	RawArgs   string
	Err       error
}

// FunctionCalls extracts every function_call output item. An argument
// decode failure is recorded per call rather than aborting the response.
func (r *Response) FunctionCalls() []FunctionCall {
	var calls []FunctionCall
	for _, item := range r.Output {
		if item.Type != "function_call" {
			continue
		}
		call := FunctionCall{
			Name:    item.Name,
			CallID:  item.CallID,
			RawArgs: item.Arguments,
		}
		if err := json.Unmarshal([]byte(item.Arguments), &call.Arguments); err != nil {
			call.Err = fmt.Errorf("decode arguments for %q: %w", item.Name, err)
		}
		calls = append(calls, call)
	}
	return calls
}

// Unmarshal decodes the response's structured output (its [Response.OutputText])
// into v. On failure the response itself stays available to the caller, so
// the raw text can still be inspected.
func (r *Response) Unmarshal(v any) error {
	text := r.OutputText()
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("parse structured output: %w", err)
	}
	return nil
}

// Cost computes the call's dollar cost from its usage and model. Unknown
// models price at zero.
func (r *Response) Cost() pricing.Cost {
	if r.Usage == nil {
		return pricing.Cost{}
	}
	return pricing.Calculate(r.Model,
		r.Usage.InputTokens,
		r.Usage.InputTokensDetails.CachedTokens,
		r.Usage.OutputTokens,
	)
}
