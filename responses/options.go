// Copyright (c) Openwire Labs. All rights reserved.

package responses

import (
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// clientConfig holds resolved configuration for a [Client].
type clientConfig struct {
	baseURL         string
	organization    string
	httpClient      *http.Client
	headers         map[string]string
	model           string
	azureCredential azcore.TokenCredential
	middleware      []Middleware
}

// Option configures a [Client].
type Option func(*clientConfig)

// WithBaseURL overrides the API base URL (e.g., for Azure OpenAI or proxies).
func WithBaseURL(url string) Option {
	return func(c *clientConfig) { c.baseURL = url }
}

// WithOrganization sets the OpenAI organization header.
func WithOrganization(org string) Option {
	return func(c *clientConfig) { c.organization = org }
}

// WithHTTPClient provides a custom http.Client for requests. Timeouts,
// proxies, and retry policies belong to this client, not the library.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) { c.httpClient = client }
}

// WithHeaders adds custom headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *clientConfig) { c.headers = headers }
}

// WithModel sets the default model injected into requests that carry none.
func WithModel(model string) Option {
	return func(c *clientConfig) { c.model = model }
}

// WithAzureCredential enables Azure AD token authentication using the provided credential.
// When set, the client obtains and refreshes tokens automatically instead of using API keys.
func WithAzureCredential(cred azcore.TokenCredential) Option {
	return func(c *clientConfig) { c.azureCredential = cred }
}

// WithMiddleware adds middleware to the request pipeline.
// Middleware is applied in the order provided (first = outermost).
func WithMiddleware(mw ...Middleware) Option {
	return func(c *clientConfig) { c.middleware = append(c.middleware, mw...) }
}
