// Copyright (c) Openwire Labs. All rights reserved.

package responses

import "encoding/json"

// InputItem is a sealed interface over the item kinds accepted in a
// request's input array. Use a plain string input for single-turn text;
// use items for multi-message turns and function-call results.
type InputItem interface {
	json.Marshaler

	// sealed prevents external implementations.
	sealed()
}

// InputMessage is a conversational message in the request input.
type InputMessage struct {
	Role string `json:"role"`
	Text string `json:"content"`
}

func (InputMessage) sealed() {}

func (m InputMessage) MarshalJSON() ([]byte, error) {
	type wire struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	return json.Marshal(wire{Role: m.Role, Content: m.Text})
}

// NewUserMessage creates a user-role [InputMessage].
func NewUserMessage(text string) InputMessage {
	return InputMessage{Role: "user", Text: text}
}

// NewDeveloperMessage creates a developer-role [InputMessage].
func NewDeveloperMessage(text string) InputMessage {
	return InputMessage{Role: "developer", Text: text}
}

// FunctionCallOutput feeds the result of an executed function call back to
// the model.
type FunctionCallOutput struct {
	CallID string
	Output string
}

func (FunctionCallOutput) sealed() {}

func (o FunctionCallOutput) MarshalJSON() ([]byte, error) {
	type wire struct {
		Type   string `json:"type"`
		CallID string `json:"call_id"`
		Output string `json:"output"`
	}
	return json.Marshal(wire{Type: "function_call_output", CallID: o.CallID, Output: o.Output})
}

// RawItem is an arbitrary input item passed through to the wire untouched,
// for item kinds this package does not model.
type RawItem map[string]any

func (RawItem) sealed() {}

func (r RawItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any(r))
}
