// Copyright (c) Openwire Labs. All rights reserved.

package responses

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// defaultMaxIterations bounds the function-call loop's round trips.
const defaultMaxIterations = 40

// Runner drives the function-call loop: send a request, execute every
// function call the model asks for, feed the results back as a follow-up
// request, and repeat until a response arrives with no calls.
//
// Tool execution errors never abort the loop; the error text is returned to
// the model as the call's output. Transport and API errors abort
// immediately.
//
// A Runner performs sequential blocking round trips and must not be used
// from multiple goroutines at once. Tools are invoked synchronously on the
// caller's goroutine.
type Runner struct {
	client                *Client
	tools                 map[string]Tool
	toolList              []Tool
	maxIterations         int
	includeDetailedErrors bool
}

// RunnerOption configures a [Runner].
type RunnerOption func(*Runner)

// WithMaxIterations limits the number of model round trips per Run.
func WithMaxIterations(n int) RunnerOption {
	return func(r *Runner) { r.maxIterations = n }
}

// WithDetailedErrors includes full tool error text in outputs sent back to
// the model. When unset, a generic error message is used.
func WithDetailedErrors() RunnerOption {
	return func(r *Runner) { r.includeDetailedErrors = true }
}

// NewRunner creates a Runner over the given client and tools. The tool
// table is resolved once, by name.
func NewRunner(client *Client, tools []Tool, opts ...RunnerOption) *Runner {
	r := &Runner{
		client:        client,
		tools:         make(map[string]Tool, len(tools)),
		toolList:      tools,
		maxIterations: defaultMaxIterations,
	}
	for _, t := range tools {
		r.tools[t.Name()] = t
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the loop starting from req and returns the full ordered
// history of responses, oldest first. The last response always carries zero
// function calls; a request that triggers no calls yields a one-element
// history. If an API call fails the error is surfaced and the partial
// history is discarded.
func (r *Runner) Run(ctx context.Context, req *Request) ([]*Response, error) {
	if len(req.Tools) == 0 {
		next := *req
		next.Tools = r.toolList
		req = &next
	}

	var history []*Response

	for iteration := 0; iteration < r.maxIterations; iteration++ {
		resp, err := r.client.Create(ctx, req)
		if err != nil {
			return nil, err
		}
		history = append(history, resp)

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			return history, nil
		}

		outputs := make([]InputItem, 0, len(calls))
		for _, call := range calls {
			outputs = append(outputs, FunctionCallOutput{
				CallID: call.CallID,
				Output: r.execute(ctx, call),
			})
		}

		req = followUp(resp, req, outputs)
	}

	return nil, fmt.Errorf("%w (%d)", ErrMaxIterations, r.maxIterations)
}

// execute invokes a single function call, converting every failure into an
// error-string output for the model.
func (r *Runner) execute(ctx context.Context, call FunctionCall) string {
	if call.Err != nil {
		slog.WarnContext(ctx, "function call arguments undecodable",
			"tool", call.Name,
			"error", call.Err,
		)
		return r.errorOutput(call.Err)
	}

	tool, ok := r.tools[call.Name]
	if !ok {
		slog.WarnContext(ctx, "unknown tool called", "tool", call.Name)
		return "error: unknown tool"
	}

	result, err := tool.Invoke(ctx, json.RawMessage(call.RawArgs))
	if err != nil {
		slog.WarnContext(ctx, "tool invocation error",
			"tool", call.Name,
			"error", err,
		)
		return r.errorOutput(err)
	}

	out, err := marshalResult(result)
	if err != nil {
		return r.errorOutput(err)
	}
	return out
}

func (r *Runner) errorOutput(err error) string {
	if r.includeDetailedErrors {
		return "error: " + err.Error()
	}
	return "error invoking tool"
}

func marshalResult(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	b, err := json.Marshal(v)
	return string(b), err
}
