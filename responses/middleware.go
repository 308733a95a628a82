// Copyright (c) Openwire Labs. All rights reserved.

package responses

import (
	"context"
	"log/slog"
	"time"
)

// Handler is the function signature for processing a request.
type Handler func(ctx context.Context, req *Request) (*Response, error)

// Middleware wraps a [Handler] to add cross-cutting behavior.
// Middleware should call next to continue the chain, or return early to short-circuit.
type Middleware func(next Handler) Handler

// chainMiddleware applies middleware in order (first in list = outermost wrapper).
func chainMiddleware(handler Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	return handler
}

// Logging returns a [Middleware] that logs requests using slog.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) (*Response, error) {
			start := time.Now()
			logger.InfoContext(ctx, "responses call started",
				"model", req.Model,
			)

			resp, err := next(ctx, req)

			duration := time.Since(start)
			if err != nil {
				logger.ErrorContext(ctx, "responses call failed",
					"duration", duration,
					"error", err,
				)
				return nil, err
			}

			attrs := []any{
				"duration", duration,
				"response_id", resp.ID,
				"status", resp.Status,
			}
			if resp.Usage != nil {
				attrs = append(attrs,
					"input_tokens", resp.Usage.InputTokens,
					"output_tokens", resp.Usage.OutputTokens,
				)
			}
			logger.InfoContext(ctx, "responses call completed", attrs...)
			return resp, nil
		}
	}
}
