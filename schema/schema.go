// Copyright (c) Openwire Labs. All rights reserved.

// Package schema builds JSON Schemas for structured outputs and
// function-tool parameters, in the strict dialect the Responses API
// requires: every object property is required and additional properties are
// forbidden. Build a [Spec] from the constructors here and normalize it, or
// generate one from a Go struct with [Generate].
package schema

import (
	"fmt"
	"sort"
)

// Spec is a sealed interface describing a field specification for the
// JSON Schema dialect accepted by the Responses API. Build specs from the
// concrete types in this package ([Primitive], [Annotated], [Array],
// [Union], [Object], [Map], [Nullable], [Raw]) and pass them to [Normalize]
// or the envelope builders.
type Spec interface {
	// sealed prevents external implementations.
	sealed()
}

// Primitive is a bare scalar type: one of string, number, integer, boolean.
type Primitive string

const (
	String  Primitive = "string"
	Number  Primitive = "number"
	Integer Primitive = "integer"
	Boolean Primitive = "boolean"
)

func (Primitive) sealed() {}

// Annotated is a primitive carrying extra schema keywords (description,
// pattern, format, enum, minLength, ...). Option values are merged onto the
// base node as-is; the API performs its own schema validation.
type Annotated struct {
	Type    Primitive
	Options map[string]any
}

func (Annotated) sealed() {}

// Array describes a homogeneous array of Items.
type Array struct {
	Items Spec
}

func (Array) sealed() {}

// Union describes an anyOf union of the given variants. The resulting node
// has no type key at the union level.
type Union []Spec

func (Union) sealed() {}

// AnyOf builds a [Union] from its variants.
func AnyOf(variants ...Spec) Union { return Union(variants) }

// Field is a single named entry of an [Object].
type Field struct {
	Name string
	Spec Spec
}

// Object is an ordered list of fields. Field declaration order determines
// the order of the generated required array, which in turn determines
// request reproducibility. Every field is required; express optionality by
// adding "null" to the type via [Nullable].
type Object []Field

func (Object) sealed() {}

// Map is an unordered field mapping. The generated required array is sorted
// lexicographically by field name so that output is deterministic.
type Map map[string]Spec

func (Map) sealed() {}

// Nullable wraps a spec so that null becomes an accepted value. A scalar
// type "x" becomes ["x","null"]; a wrapped schema without a direct scalar
// type key (unions, already-nullable nodes) falls back to
// {"anyOf":[schema,{"type":"null"}]}.
type Nullable struct {
	Spec Spec
}

func (Nullable) sealed() {}

// Raw is an already-canonical schema node passed through untouched.
// Normalizing a Raw node is idempotent.
type Raw map[string]any

func (Raw) sealed() {}

// Error describes a malformed spec. It is a programmer error: fix the spec,
// do not retry.
type Error struct {
	Spec   any
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("schema: %s (spec: %v)", e.Reason, e.Spec)
}

// Normalize converts a [Spec] into a canonical JSON-Schema node. Object
// nodes always carry additionalProperties:false and a required array listing
// every declared property exactly once.
func Normalize(spec Spec) (map[string]any, error) {
	switch s := spec.(type) {
	case nil:
		return nil, &Error{Spec: nil, Reason: "nil spec"}

	case Primitive:
		return normalizePrimitive(s)

	case Annotated:
		node, err := normalizePrimitive(s.Type)
		if err != nil {
			return nil, err
		}
		for k, v := range s.Options {
			node[k] = v
		}
		return node, nil

	case Array:
		items, err := Normalize(s.Items)
		if err != nil {
			return nil, err
		}
		return map[string]any{"type": "array", "items": items}, nil

	case Union:
		if len(s) == 0 {
			return nil, &Error{Spec: s, Reason: "empty union"}
		}
		variants := make([]any, 0, len(s))
		for _, v := range s {
			node, err := Normalize(v)
			if err != nil {
				return nil, err
			}
			variants = append(variants, node)
		}
		return map[string]any{"anyOf": variants}, nil

	case Object:
		names := make([]string, 0, len(s))
		specs := make([]Spec, 0, len(s))
		seen := make(map[string]bool, len(s))
		for _, f := range s {
			if seen[f.Name] {
				return nil, &Error{Spec: s, Reason: fmt.Sprintf("duplicate field %q", f.Name)}
			}
			seen[f.Name] = true
			names = append(names, f.Name)
			specs = append(specs, f.Spec)
		}
		return normalizeObject(names, specs)

	case Map:
		names := make([]string, 0, len(s))
		for name := range s {
			names = append(names, name)
		}
		sort.Strings(names)
		specs := make([]Spec, 0, len(s))
		for _, name := range names {
			specs = append(specs, s[name])
		}
		return normalizeObject(names, specs)

	case Nullable:
		node, err := Normalize(s.Spec)
		if err != nil {
			return nil, err
		}
		if t, ok := node["type"].(string); ok {
			node["type"] = []any{t, "null"}
			return node, nil
		}
		return map[string]any{"anyOf": []any{node, map[string]any{"type": "null"}}}, nil

	case Raw:
		node := make(map[string]any, len(s))
		for k, v := range s {
			node[k] = v
		}
		return node, nil

	default:
		return nil, &Error{Spec: spec, Reason: fmt.Sprintf("unsupported spec type %T", spec)}
	}
}

func normalizePrimitive(p Primitive) (map[string]any, error) {
	switch p {
	case String, Number, Integer, Boolean:
		return map[string]any{"type": string(p)}, nil
	default:
		return nil, &Error{Spec: p, Reason: fmt.Sprintf("unsupported primitive type %q", string(p))}
	}
}

// normalizeObject builds an object node from parallel name/spec slices.
// The required array follows the slice order: declaration order for ordered
// input, lexicographic for map input.
func normalizeObject(names []string, specs []Spec) (map[string]any, error) {
	properties := make(map[string]any, len(names))
	required := make([]any, 0, len(names))
	for i, name := range names {
		node, err := Normalize(specs[i])
		if err != nil {
			return nil, err
		}
		properties[name] = node
		required = append(required, name)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}, nil
}
