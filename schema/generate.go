// Copyright (c) Openwire Labs. All rights reserved.

package schema

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Generate builds a strict JSON Schema for a Go struct type using
// reflection. Field names come from json tags; the jsonschema tag supplies
// description and enum metadata:
//
//	type WeatherArgs struct {
//	    Location string `json:"location" jsonschema:"description=City name"`
//	    Unit     string `json:"unit"     jsonschema:"enum=celsius|fahrenheit"`
//	}
//
// The strict dialect leaves no room for optional fields: every exported
// field is required and every object forbids additional properties.
func Generate[T any]() json.RawMessage {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return json.RawMessage(`{"type":"object","properties":{},"required":[],"additionalProperties":false}`)
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	b, _ := json.Marshal(nodeForType(t))
	return b
}

func nodeForType(t reflect.Type) map[string]any {
	switch t.Kind() {
	case reflect.String:
		return map[string]any{"type": "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": "integer"}
	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}
	case reflect.Bool:
		return map[string]any{"type": "boolean"}
	case reflect.Slice, reflect.Array:
		return map[string]any{"type": "array", "items": nodeForType(t.Elem())}
	case reflect.Ptr:
		// Pointers mark nullable fields: the type becomes a [x, null] union.
		node := nodeForType(t.Elem())
		if s, ok := node["type"].(string); ok {
			node["type"] = []any{s, "null"}
		}
		return node
	case reflect.Map:
		// Free-form maps carry their value schema through
		// additionalProperties. The strict structured-output dialect
		// rejects open objects, so prefer a struct for schemas sent with
		// strict:true; map support is for tool parameters that tolerate it.
		return map[string]any{
			"type":                 "object",
			"additionalProperties": nodeForType(t.Elem()),
		}
	case reflect.Struct:
		return nodeForStruct(t)
	default:
		// Interfaces and other unschemable kinds degrade to a string node.
		return map[string]any{"type": "string"}
	}
}

func nodeForStruct(t reflect.Type) map[string]any {
	properties := make(map[string]any)
	required := make([]any, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name := field.Name
		if jsonTag != "" {
			parts := strings.SplitN(jsonTag, ",", 2)
			if parts[0] != "" {
				name = parts[0]
			}
		}

		prop := nodeForType(field.Type)
		applySchemaTag(prop, field.Tag.Get("jsonschema"))

		properties[name] = prop
		required = append(required, name)
	}

	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

func applySchemaTag(prop map[string]any, tag string) {
	if tag == "" {
		return
	}
	for _, part := range strings.Split(tag, ",") {
		kv := strings.SplitN(part, "=", 2)
		key := strings.TrimSpace(kv[0])
		val := ""
		if len(kv) == 2 {
			val = strings.TrimSpace(kv[1])
		}
		switch key {
		case "description":
			prop["description"] = val
		case "enum":
			enumVals := strings.Split(val, "|")
			anyVals := make([]any, len(enumVals))
			for j, ev := range enumVals {
				anyVals[j] = strings.TrimSpace(ev)
			}
			prop["enum"] = anyVals
		case "required":
			// Accepted for compatibility; every field is required here anyway.
		}
	}
}
