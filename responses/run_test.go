// Copyright (c) Openwire Labs. All rights reserved.

package responses_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/openwire-ai/respond/responses"
)

func functionCallResponse(id, model, callID, name, args string) map[string]any {
	return map[string]any{
		"id":     id,
		"object": "response",
		"status": "completed",
		"model":  model,
		"output": []map[string]any{{
			"type":      "function_call",
			"call_id":   callID,
			"name":      name,
			"arguments": args,
		}},
	}
}

// scriptedClient returns a client whose transport replays the given
// responses in order, recording each request body.
func scriptedClient(t *testing.T, calls *[]map[string]any, script ...map[string]any) *responses.Client {
	t.Helper()
	i := 0
	httpClient := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		body, _ := io.ReadAll(req.Body)
		var reqBody map[string]any
		json.Unmarshal(body, &reqBody)
		*calls = append(*calls, reqBody)

		if i >= len(script) {
			t.Fatalf("unexpected request %d", i)
		}
		resp := script[i]
		i++
		return jsonResponse(200, resp), nil
	})
	return responses.New("test-key",
		responses.WithModel("gpt-4.1-mini"),
		responses.WithHTTPClient(httpClient),
	)
}

func TestRunner_NoCallsSingleResponse(t *testing.T) {
	var calls []map[string]any
	client := scriptedClient(t, &calls,
		messageResponse("resp_1", "gpt-4.1-mini", "plain answer"),
	)

	runner := responses.NewRunner(client, nil)
	history, err := runner.Run(context.Background(), &responses.Request{Input: "hi"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(history) != 1 {
		t.Fatalf("history = %d responses", len(history))
	}
	if history[0].OutputText() != "plain answer" {
		t.Errorf("text = %q", history[0].OutputText())
	}
	if len(history[len(history)-1].FunctionCalls()) != 0 {
		t.Error("last response must carry zero function calls")
	}
}

func TestRunner_ExecutesToolAndFeedsBackOutput(t *testing.T) {
	weather := responses.NewTypedTool("get_weather", "Get the weather.",
		func(ctx context.Context, args struct {
			Location string `json:"location"`
		}) (any, error) {
			return map[string]any{"forecast": "sunny", "location": args.Location}, nil
		},
	)

	var calls []map[string]any
	client := scriptedClient(t, &calls,
		functionCallResponse("resp_1", "gpt-4.1-mini", "call_1", "get_weather", `{"location":"Paris"}`),
		messageResponse("resp_2", "gpt-4.1-mini", "It is sunny in Paris."),
	)

	runner := responses.NewRunner(client, []responses.Tool{weather})
	history, err := runner.Run(context.Background(), &responses.Request{Input: "weather in Paris?"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(history) != 2 {
		t.Fatalf("history = %d responses", len(history))
	}
	if history[0].ID != "resp_1" || history[1].ID != "resp_2" {
		t.Errorf("history order = %q, %q", history[0].ID, history[1].ID)
	}
	if len(history[1].FunctionCalls()) != 0 {
		t.Error("last response must carry zero function calls")
	}

	// The runner's tools are injected into the first request.
	if tools, ok := calls[0]["tools"].([]any); !ok || len(tools) != 1 {
		t.Errorf("first request tools = %v", calls[0]["tools"])
	}

	// The follow-up chains to the prior response and carries the output.
	followUp := calls[1]
	if followUp["previous_response_id"] != "resp_1" {
		t.Errorf("previous_response_id = %v", followUp["previous_response_id"])
	}
	items := followUp["input"].([]any)
	if len(items) != 1 {
		t.Fatalf("follow-up input = %v", items)
	}
	item := items[0].(map[string]any)
	if item["type"] != "function_call_output" || item["call_id"] != "call_1" {
		t.Errorf("follow-up item = %v", item)
	}
	var result map[string]any
	if err := json.Unmarshal([]byte(item["output"].(string)), &result); err != nil {
		t.Fatalf("output not JSON: %v", err)
	}
	if result["forecast"] != "sunny" || result["location"] != "Paris" {
		t.Errorf("tool output = %v", result)
	}
}

func TestRunner_StringResultPassedVerbatim(t *testing.T) {
	echo := responses.NewTool("echo", "Echo.", nil,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			return "raw string output", nil
		},
	)

	var calls []map[string]any
	client := scriptedClient(t, &calls,
		functionCallResponse("resp_1", "gpt-4.1-mini", "call_1", "echo", `{}`),
		messageResponse("resp_2", "gpt-4.1-mini", "done"),
	)

	runner := responses.NewRunner(client, []responses.Tool{echo})
	if _, err := runner.Run(context.Background(), &responses.Request{Input: "echo"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	item := calls[1]["input"].([]any)[0].(map[string]any)
	if item["output"] != "raw string output" {
		t.Errorf("output = %v, strings must not be JSON-wrapped", item["output"])
	}
}

func TestRunner_ToolErrorFedBackToModel(t *testing.T) {
	failing := responses.NewTool("lookup", "Always fails.", nil,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			return nil, fmt.Errorf("database unreachable")
		},
	)

	var calls []map[string]any
	client := scriptedClient(t, &calls,
		functionCallResponse("resp_1", "gpt-4.1-mini", "call_1", "lookup", `{}`),
		messageResponse("resp_2", "gpt-4.1-mini", "I could not look that up."),
	)

	runner := responses.NewRunner(client, []responses.Tool{failing}, responses.WithDetailedErrors())
	history, err := runner.Run(context.Background(), &responses.Request{Input: "look it up"})
	if err != nil {
		t.Fatalf("tool failure must not abort the loop: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history = %d responses", len(history))
	}

	item := calls[1]["input"].([]any)[0].(map[string]any)
	if item["output"] != "error: database unreachable" {
		t.Errorf("output = %v", item["output"])
	}
}

func TestRunner_GenericErrorWithoutDetailOption(t *testing.T) {
	failing := responses.NewTool("lookup", "Always fails.", nil,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			return nil, fmt.Errorf("secret internal detail")
		},
	)

	var calls []map[string]any
	client := scriptedClient(t, &calls,
		functionCallResponse("resp_1", "gpt-4.1-mini", "call_1", "lookup", `{}`),
		messageResponse("resp_2", "gpt-4.1-mini", "sorry"),
	)

	runner := responses.NewRunner(client, []responses.Tool{failing})
	if _, err := runner.Run(context.Background(), &responses.Request{Input: "go"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	item := calls[1]["input"].([]any)[0].(map[string]any)
	if item["output"] != "error invoking tool" {
		t.Errorf("output = %v", item["output"])
	}
}

func TestRunner_UnknownToolReportedToModel(t *testing.T) {
	var calls []map[string]any
	client := scriptedClient(t, &calls,
		functionCallResponse("resp_1", "gpt-4.1-mini", "call_1", "no_such_tool", `{}`),
		messageResponse("resp_2", "gpt-4.1-mini", "ok"),
	)

	runner := responses.NewRunner(client, nil)
	history, err := runner.Run(context.Background(), &responses.Request{Input: "go"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history = %d responses", len(history))
	}

	item := calls[1]["input"].([]any)[0].(map[string]any)
	if item["output"] != "error: unknown tool" {
		t.Errorf("output = %v", item["output"])
	}
}

func TestRunner_UndecodableArgumentsFedBackAsError(t *testing.T) {
	invoked := false
	tool := responses.NewTool("t", "", nil,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			invoked = true
			return "ok", nil
		},
	)

	var calls []map[string]any
	client := scriptedClient(t, &calls,
		functionCallResponse("resp_1", "gpt-4.1-mini", "call_1", "t", `{broken`),
		messageResponse("resp_2", "gpt-4.1-mini", "ok"),
	)

	runner := responses.NewRunner(client, []responses.Tool{tool})
	if _, err := runner.Run(context.Background(), &responses.Request{Input: "go"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if invoked {
		t.Error("tool must not run on undecodable arguments")
	}

	item := calls[1]["input"].([]any)[0].(map[string]any)
	if item["output"] != "error invoking tool" {
		t.Errorf("output = %v", item["output"])
	}
}

func TestRunner_APIErrorAbortsAndDiscardsHistory(t *testing.T) {
	tool := responses.NewTool("t", "", nil,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			return "ok", nil
		},
	)

	i := 0
	httpClient := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		i++
		if i == 1 {
			return jsonResponse(200, functionCallResponse("resp_1", "gpt-4.1-mini", "call_1", "t", `{}`)), nil
		}
		return jsonResponse(500, map[string]any{
			"error": map[string]any{"message": "overloaded"},
		}), nil
	})

	client := responses.New("test-key",
		responses.WithModel("gpt-4.1-mini"),
		responses.WithHTTPClient(httpClient),
	)

	runner := responses.NewRunner(client, []responses.Tool{tool})
	history, err := runner.Run(context.Background(), &responses.Request{Input: "go"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, responses.ErrTransport) {
		t.Errorf("err = %v", err)
	}
	if history != nil {
		t.Errorf("history = %v, must be discarded on API failure", history)
	}
}

func TestRunner_MaxIterationsExceeded(t *testing.T) {
	tool := responses.NewTool("again", "", nil,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			return "more", nil
		},
	)

	n := 0
	httpClient := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		n++
		id := fmt.Sprintf("resp_%d", n)
		return jsonResponse(200, functionCallResponse(id, "gpt-4.1-mini", "call_1", "again", `{}`)), nil
	})

	client := responses.New("test-key",
		responses.WithModel("gpt-4.1-mini"),
		responses.WithHTTPClient(httpClient),
	)

	runner := responses.NewRunner(client, []responses.Tool{tool}, responses.WithMaxIterations(3))
	history, err := runner.Run(context.Background(), &responses.Request{Input: "loop"})
	if !errors.Is(err, responses.ErrMaxIterations) {
		t.Fatalf("err = %v, want ErrMaxIterations", err)
	}
	if history != nil {
		t.Errorf("history = %v", history)
	}
	if n != 3 {
		t.Errorf("round trips = %d", n)
	}
}

func TestRunner_RequestToolsWinOverRunnerTools(t *testing.T) {
	runnerTool := responses.NewTool("runner_tool", "", nil, nil)
	reqTool := responses.NewTool("request_tool", "", nil,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			return "ok", nil
		},
	)

	var calls []map[string]any
	client := scriptedClient(t, &calls,
		messageResponse("resp_1", "gpt-4.1-mini", "done"),
	)

	runner := responses.NewRunner(client, []responses.Tool{runnerTool})
	_, err := runner.Run(context.Background(), &responses.Request{
		Input: "go",
		Tools: []responses.Tool{reqTool},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	tools := calls[0]["tools"].([]any)
	if len(tools) != 1 || tools[0].(map[string]any)["name"] != "request_tool" {
		t.Errorf("tools = %v", tools)
	}
}
