// Copyright (c) Openwire Labs. All rights reserved.

// Command chat is an interactive multi-turn assistant with tool use.
//
// It works with both direct OpenAI and Azure OpenAI endpoints.
//
// Usage with OpenAI:
//
//	export OPENAI_API_KEY=sk-...
//	go run .
//
// Usage with Azure OpenAI:
//
//	export AZURE_OPENAI_ENDPOINT=https://<resource>.openai.azure.com/openai/v1
//	export AZURE_OPENAI_KEY=<your-key>          # omit to use Azure AD auth
//	export OPENAI_MODEL=gpt-4o                  # optional
//	go run .
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/joho/godotenv"

	"github.com/openwire-ai/respond/responses"
)

func main() {
	// Load .env file if present (ignored if missing).
	_ = godotenv.Load()

	if os.Getenv("DEBUG") != "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	client := newClient()

	weatherTool := responses.NewTypedTool("get_weather",
		"Get the current weather for a location.",
		func(ctx context.Context, args struct {
			Location string `json:"location" jsonschema:"description=City name or location"`
			Unit     string `json:"unit"     jsonschema:"description=Temperature unit,enum=celsius|fahrenheit"`
		}) (any, error) {
			// Simulated weather API
			unit := args.Unit
			if unit == "" {
				unit = "celsius"
			}
			temp := 22
			if unit == "fahrenheit" {
				temp = 72
			}
			return map[string]any{
				"location":    args.Location,
				"temperature": temp,
				"unit":        unit,
				"condition":   "sunny",
			}, nil
		},
	)

	runner := responses.NewRunner(client,
		[]responses.Tool{weatherTool},
		responses.WithDetailedErrors(),
	)

	var lastID string

	fmt.Println("Chat with the assistant (type 'quit' to exit, 'stream' prefix for streaming)")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			break
		}

		ctx := context.Background()

		if text, ok := strings.CutPrefix(input, "stream "); ok {
			// Streaming mode: print deltas as they arrive.
			stream, err := client.CreateStream(ctx, &responses.Request{
				Input:              text,
				PreviousResponseID: lastID,
			})
			if err != nil {
				log.Printf("Error: %v", err)
				continue
			}

			fmt.Print("Assistant: ")
			for {
				ev, ok, err := stream.Next(ctx)
				if err != nil {
					log.Printf("\nStream error: %v", err)
					break
				}
				if !ok {
					break
				}
				if delta, ok := responses.DeltaText(ev); ok {
					fmt.Print(delta)
				}
			}
			fmt.Println()
			if final, err := stream.Final(ctx); err == nil && final.ID != "" {
				lastID = final.ID
			}
			stream.Close()
			fmt.Println()
			continue
		}

		// Non-streaming mode: the runner handles any tool calls.
		history, err := runner.Run(ctx, &responses.Request{
			Input:              input,
			Instructions:       "You are a helpful assistant. Use get_weather for weather questions. Keep responses concise.",
			PreviousResponseID: lastID,
		})
		if err != nil {
			log.Printf("Error: %v", err)
			continue
		}

		final := history[len(history)-1]
		lastID = final.ID
		fmt.Printf("Assistant: %s\n", final.OutputText())
		if final.Usage != nil {
			fmt.Printf("  [tokens: %d in, %d out | cost: $%.6f]\n",
				final.Usage.InputTokens, final.Usage.OutputTokens,
				final.Cost().Total)
		}
		fmt.Println()
	}
}

// newClient creates a Responses client, choosing between Azure OpenAI and
// direct OpenAI based on which environment variables are set.
func newClient() *responses.Client {
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o"
	}

	if endpoint := os.Getenv("AZURE_OPENAI_ENDPOINT"); endpoint != "" {
		fmt.Printf("Using Azure OpenAI: %s\n", endpoint)

		key := os.Getenv("AZURE_OPENAI_KEY")
		if key == "" {
			// No key: fall back to Azure AD authentication.
			fmt.Println("Using Azure AD authentication (DefaultAzureCredential)")
			cred, err := azidentity.NewDefaultAzureCredential(nil)
			if err != nil {
				log.Fatalf("Failed to create Azure credential: %v", err)
			}
			return responses.New("",
				responses.WithBaseURL(endpoint),
				responses.WithModel(model),
				responses.WithAzureCredential(cred),
			)
		}

		return responses.New(key,
			responses.WithBaseURL(endpoint),
			responses.WithModel(model),
			responses.WithHeaders(map[string]string{
				"api-key": key, // Azure uses api-key header instead of Bearer token
			}),
		)
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("Set OPENAI_API_KEY or AZURE_OPENAI_ENDPOINT")
	}
	return responses.New(apiKey,
		responses.WithModel(model),
		responses.WithMiddleware(responses.Logging(slog.Default())),
	)
}
