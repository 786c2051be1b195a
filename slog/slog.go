// Package slog provides log/slog decorators for the llmsdoc interfaces.
// Each decorator logs one record per call with its duration and error.
package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/llmsdoc"
)

// loggerFor adds the request id carried by ctx, if any.
func loggerFor(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if id := llmsdoc.RequestIDFromContext(ctx); id != "" {
		return logger.With("request_id", id)
	}
	return logger
}
