// Copyright (c) Openwire Labs. All rights reserved.

// Package responses is a client for the OpenAI Responses API, covering
// direct OpenAI and Azure OpenAI endpoints.
//
// # Quick Start
//
// Create a client and send a request:
//
//	client := responses.New(os.Getenv("OPENAI_API_KEY"),
//	    responses.WithModel("gpt-4.1-mini"),
//	)
//
//	resp, err := client.Create(ctx, &responses.Request{
//	    Input: "Write a haiku about the sea.",
//	})
//	fmt.Println(resp.OutputText())
//
// # Streaming
//
// CreateStream returns a [Stream] of decoded server-sent events. Drain it
// for text, or reconstruct the full response:
//
//	stream, err := client.CreateStream(ctx, req)
//	defer stream.Close()
//	for {
//	    ev, ok, err := stream.Next(ctx)
//	    if err != nil || !ok {
//	        break
//	    }
//	    if delta, ok := responses.DeltaText(ev); ok {
//	        fmt.Print(delta)
//	    }
//	}
//	final, err := stream.Final(ctx)
//
// # Structured output
//
// Constrain the response to a JSON Schema built with the schema package:
//
//	req := &responses.Request{
//	    Input: "Extract the event details.",
//	    Schema: &responses.OutputSchema{
//	        Name: "event",
//	        Spec: schema.Object{
//	            {Name: "title", Spec: schema.String},
//	            {Name: "date", Spec: schema.Annotated{Type: schema.String, Options: map[string]any{"format": "date"}}},
//	        },
//	    },
//	}
//	resp, err := client.Create(ctx, req)
//	var event struct {
//	    Title string `json:"title"`
//	    Date  string `json:"date"`
//	}
//	err = resp.Unmarshal(&event)
//
// # Function calling
//
// A [Runner] executes the model's function calls against registered tools
// and loops until the model produces a final answer:
//
//	runner := responses.NewRunner(client, []responses.Tool{weatherTool})
//	history, err := runner.Run(ctx, &responses.Request{Input: "Weather in Oslo?"})
//	fmt.Println(history[len(history)-1].OutputText())
//
// # Errors
//
// Failures carry sentinel errors for errors.Is ([ErrConfig], [ErrTransport],
// [ErrAuth], ...) and typed wrappers for errors.As ([APIError], [ToolError]).
// Remote and data errors are always returned as values, never panics.
package responses
