// Copyright (c) Openwire Labs. All rights reserved.

package responses

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrConfig indicates missing or invalid client configuration.
	ErrConfig = errors.New("config error")

	// ErrMissingAPIKey is returned when no API key could be resolved.
	ErrMissingAPIKey = fmt.Errorf("%w: missing API key", ErrConfig)

	// ErrMissingModel is returned when a request has no model and the
	// client has no default.
	ErrMissingModel = fmt.Errorf("%w: missing required option model", ErrConfig)

	// ErrMissingInput is returned when a request has no input.
	ErrMissingInput = fmt.Errorf("%w: missing required option input", ErrConfig)

	// ErrTransport is the base error for network and HTTP failures. The
	// client never retries; retry policy belongs to the caller's transport.
	ErrTransport = errors.New("transport error")

	// ErrAuth indicates an authentication or authorization failure (401/403).
	ErrAuth = fmt.Errorf("%w: authentication", ErrTransport)

	// ErrInvalidRequest indicates the service rejected the request body (400).
	ErrInvalidRequest = fmt.Errorf("%w: invalid request", ErrTransport)

	// ErrTool is the base error for tool-related failures.
	ErrTool = errors.New("tool error")

	// ErrToolExecution indicates a failure during tool invocation.
	ErrToolExecution = fmt.Errorf("%w: execution", ErrTool)

	// ErrMaxIterations is returned when the function-call loop exceeds its
	// round-trip budget.
	ErrMaxIterations = errors.New("max iterations reached")
)

// APIError provides rich context for Responses API failures.
// Use errors.As to extract it from a wrapped error chain.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
	RequestID  string
	Err        error
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("responses: API error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("responses: API error %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// ToolError provides context for tool invocation failures.
type ToolError struct {
	ToolName string
	Message  string
	Err      error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool %q: %s", e.ToolName, e.Message)
}

func (e *ToolError) Unwrap() error { return e.Err }
