// Copyright (c) Openwire Labs. All rights reserved.

// Command structured extracts typed data from free text using a JSON Schema
// built with the schema package.
//
// Usage:
//
//	export OPENAI_API_KEY=sk-...
//	go run . "Maria Silva, 34, software engineer in Lisbon, speaks pt/en/es"
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/openwire-ai/respond/responses"
	"github.com/openwire-ai/respond/schema"
)

type person struct {
	Name       string   `json:"name"`
	Age        *int     `json:"age"`
	Occupation string   `json:"occupation"`
	City       string   `json:"city"`
	Languages  []string `json:"languages"`
}

func main() {
	client, err := responses.FromEnv(responses.WithModel("gpt-4.1-mini"))
	if err != nil {
		log.Fatal(err)
	}

	text := "Maria Silva, 34, software engineer in Lisbon, speaks pt/en/es"
	if len(os.Args) > 1 {
		text = strings.Join(os.Args[1:], " ")
	}

	// Field order here fixes the order of the schema's required array, so
	// the request body is reproducible run to run.
	personSpec := schema.Object{
		{Name: "name", Spec: schema.String},
		{Name: "age", Spec: schema.Nullable{Spec: schema.Integer}},
		{Name: "occupation", Spec: schema.Annotated{
			Type:    schema.String,
			Options: map[string]any{"description": "Job title, lowercased"},
		}},
		{Name: "city", Spec: schema.String},
		{Name: "languages", Spec: schema.Array{Items: schema.String}},
	}

	resp, err := client.Create(context.Background(), &responses.Request{
		Input:        text,
		Instructions: "Extract the person described in the input.",
		Schema:       &responses.OutputSchema{Name: "person", Spec: personSpec},
	})
	if err != nil {
		log.Fatal(err)
	}

	var p person
	if err := resp.Unmarshal(&p); err != nil {
		log.Fatalf("parse output: %v (raw: %s)", err, resp.OutputText())
	}

	fmt.Printf("Name:       %s\n", p.Name)
	if p.Age != nil {
		fmt.Printf("Age:        %d\n", *p.Age)
	}
	fmt.Printf("Occupation: %s\n", p.Occupation)
	fmt.Printf("City:       %s\n", p.City)
	fmt.Printf("Languages:  %s\n", strings.Join(p.Languages, ", "))

	cost := resp.Cost()
	fmt.Printf("\n[model %s | $%.6f]\n", resp.Model, cost.Total)
}
