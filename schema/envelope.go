// Copyright (c) Openwire Labs. All rights reserved.

package schema

// Format builds the structured-output envelope sent in a request's
// text.format field:
//
//	{"type":"json_schema","name":<name>,"strict":true,"schema":<node>}
func Format(name string, spec Spec) (map[string]any, error) {
	node, err := Normalize(spec)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"type":   "json_schema",
		"name":   name,
		"strict": true,
		"schema": node,
	}, nil
}

// Tool builds a function-tool definition:
//
//	{"type":"function","name":<name>,"description":<desc>,"strict":true,"parameters":<node>}
func Tool(name, description string, parameters Spec) (map[string]any, error) {
	node, err := Normalize(parameters)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"type":        "function",
		"name":        name,
		"description": description,
		"strict":      true,
		"parameters":  node,
	}, nil
}
