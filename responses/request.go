// Copyright (c) Openwire Labs. All rights reserved.

package responses

import (
	"fmt"

	"github.com/openwire-ai/respond/schema"
)

// ToolChoice controls how the model selects tools.
type ToolChoice string

const (
	ToolChoiceAuto     ToolChoice = "auto"
	ToolChoiceRequired ToolChoice = "required"
	ToolChoiceNone     ToolChoice = "none"
)

// OutputSchema constrains the response to a JSON Schema built from a
// [schema.Spec]. It is translated into the request's text.format envelope;
// the spec itself never reaches the wire.
type OutputSchema struct {
	Name string
	Spec schema.Spec
}

// Request describes a single Responses API call. Model and Input are
// required; pointer fields use nil to mean "use the service default".
type Request struct {
	// Model is the model name. A client default (see [WithModel]) fills
	// this when empty.
	Model string

	// Input is the prompt: a string, an [InputItem], or a []InputItem.
	Input any

	// Instructions inserts a system/developer message into the model context.
	Instructions string

	Temperature     *float64
	TopP            *float64
	MaxOutputTokens *int

	// Tools the model may call while generating the response.
	Tools      []Tool
	ToolChoice ToolChoice

	// Schema requests structured output conforming to the given spec.
	Schema *OutputSchema

	// PreviousResponseID chains this request to a prior response, continuing
	// the conversation without resending context.
	PreviousResponseID string

	Store    *bool
	Metadata map[string]string
	User     string

	// Reasoning configures effort and summary options for reasoning models,
	// e.g. map[string]any{"effort": "low"}.
	Reasoning map[string]any

	// Extra holds pass-through options not covered by standard fields.
	// Keys already set by standard fields are not overwritten.
	Extra map[string]any
}

// buildPayload converts a Request into the wire-format request body.
// It fails fast on a missing model or input; these are configuration
// errors, never retried.
func buildPayload(req *Request, defaultModel string) (map[string]any, error) {
	if req == nil {
		req = &Request{}
	}

	model := req.Model
	if model == "" {
		model = defaultModel
	}
	if model == "" {
		return nil, ErrMissingModel
	}

	input, err := convertInput(req.Input)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"model": model,
		"input": input,
	}

	if req.Instructions != "" {
		payload["instructions"] = req.Instructions
	}
	if req.Temperature != nil {
		payload["temperature"] = *req.Temperature
	}
	if req.TopP != nil {
		payload["top_p"] = *req.TopP
	}
	if req.MaxOutputTokens != nil {
		payload["max_output_tokens"] = *req.MaxOutputTokens
	}
	if req.PreviousResponseID != "" {
		payload["previous_response_id"] = req.PreviousResponseID
	}
	if req.Store != nil {
		payload["store"] = *req.Store
	}
	if len(req.Metadata) > 0 {
		payload["metadata"] = req.Metadata
	}
	if req.User != "" {
		payload["user"] = req.User
	}
	if len(req.Reasoning) > 0 {
		payload["reasoning"] = req.Reasoning
	}

	if len(req.Tools) > 0 {
		tools := make([]any, 0, len(req.Tools))
		for _, t := range req.Tools {
			tools = append(tools, map[string]any{
				"type":        "function",
				"name":        t.Name(),
				"description": t.Description(),
				"strict":      true,
				"parameters":  t.Parameters(),
			})
		}
		payload["tools"] = tools
	}
	if req.ToolChoice != "" {
		payload["tool_choice"] = string(req.ToolChoice)
	}

	if req.Schema != nil {
		format, err := schema.Format(req.Schema.Name, req.Schema.Spec)
		if err != nil {
			return nil, err
		}
		payload["text"] = map[string]any{"format": format}
	}

	for k, v := range req.Extra {
		if _, set := payload[k]; !set {
			payload[k] = v
		}
	}

	return payload, nil
}

// convertInput normalizes the accepted input forms onto the wire shape.
func convertInput(input any) (any, error) {
	switch v := input.(type) {
	case nil:
		return nil, ErrMissingInput
	case string:
		if v == "" {
			return nil, ErrMissingInput
		}
		return v, nil
	case InputItem:
		return []InputItem{v}, nil
	case []InputItem:
		if len(v) == 0 {
			return nil, ErrMissingInput
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: unsupported input type %T", ErrConfig, input)
	}
}

// followUp derives the next request in a function-call loop: it chains to
// the given response, preserves its model unless the request overrides it,
// and replaces the input with the collected function outputs.
func followUp(prior *Response, req *Request, outputs []InputItem) *Request {
	next := *req
	next.PreviousResponseID = prior.ID
	if next.Model == "" {
		next.Model = prior.Model
	}
	next.Input = outputs
	return &next
}
