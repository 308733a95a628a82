// Copyright (c) Openwire Labs. All rights reserved.

// Package pricing computes the dollar cost of a Responses API call from its
// token usage. Prices are list prices in USD per million tokens, frozen at
// build time; dated model snapshots resolve through an alias table.
package pricing

// Cost is a per-call cost breakdown in USD. An unknown model yields the zero
// Cost rather than an error, so cost accounting never interferes with the
// request path.
type Cost struct {
	Input       float64 `json:"input"`
	CachedInput float64 `json:"cached_input"`
	Output      float64 `json:"output"`
	Total       float64 `json:"total"`
}

// rate holds list prices in USD per million tokens.
type rate struct {
	input       float64
	cachedInput float64
	output      float64
}

var rates = map[string]rate{
	"gpt-5":        {1.25, 0.125, 10.00},
	"gpt-5-mini":   {0.25, 0.025, 2.00},
	"gpt-5-nano":   {0.05, 0.005, 0.40},
	"gpt-4.1":      {2.00, 0.50, 8.00},
	"gpt-4.1-mini": {0.40, 0.10, 1.60},
	"gpt-4.1-nano": {0.10, 0.025, 0.40},
	"gpt-4o":       {2.50, 1.25, 10.00},
	"gpt-4o-mini":  {0.15, 0.075, 0.60},
	"o3":           {2.00, 0.50, 8.00},
	"o3-mini":      {1.10, 0.55, 4.40},
	"o4-mini":      {1.10, 0.275, 4.40},
}

// aliases maps dated snapshots and marketing names onto canonical entries
// in the rates table.
var aliases = map[string]string{
	"gpt-5-2025-08-07":        "gpt-5",
	"gpt-5-mini-2025-08-07":   "gpt-5-mini",
	"gpt-5-nano-2025-08-07":   "gpt-5-nano",
	"gpt-4.1-2025-04-14":      "gpt-4.1",
	"gpt-4.1-mini-2025-04-14": "gpt-4.1-mini",
	"gpt-4.1-nano-2025-04-14": "gpt-4.1-nano",
	"gpt-4o-2024-05-13":       "gpt-4o",
	"gpt-4o-2024-08-06":       "gpt-4o",
	"gpt-4o-2024-11-20":       "gpt-4o",
	"gpt-4o-mini-2024-07-18":  "gpt-4o-mini",
	"chatgpt-4o-latest":       "gpt-4o",
	"o3-2025-04-16":           "o3",
	"o3-mini-2025-01-31":      "o3-mini",
	"o4-mini-2025-04-16":      "o4-mini",
}

// Resolve maps a model name onto its canonical pricing entry. Unknown names
// are returned unchanged.
func Resolve(model string) string {
	if canonical, ok := aliases[model]; ok {
		return canonical
	}
	return model
}

// Known reports whether a model (after alias resolution) has a pricing entry.
func Known(model string) bool {
	_, ok := rates[Resolve(model)]
	return ok
}

// Calculate returns the cost of a call given its token counts. cachedTokens
// is the cached subset of inputTokens and is billed at the cached-input
// rate; the remainder is billed at the full input rate. An unknown model
// returns the zero Cost.
func Calculate(model string, inputTokens, cachedTokens, outputTokens int) Cost {
	r, ok := rates[Resolve(model)]
	if !ok {
		return Cost{}
	}

	uncached := inputTokens - cachedTokens
	if uncached < 0 {
		uncached = 0
	}

	const million = 1_000_000
	c := Cost{
		Input:       float64(uncached) * r.input / million,
		CachedInput: float64(cachedTokens) * r.cachedInput / million,
		Output:      float64(outputTokens) * r.output / million,
	}
	c.Total = c.Input + c.CachedInput + c.Output
	return c
}
