package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/llmsdoc"
)

// Ensure LoggingFetcher implements llmsdoc.Fetcher.
var _ llmsdoc.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with request logging.
type LoggingFetcher struct {
	next   llmsdoc.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next llmsdoc.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (res *llmsdoc.Resource, err error) {
	defer func(begin time.Time) {
		var size int
		var contentType string
		if res != nil {
			size = len(res.Content)
			contentType = res.ContentType
		}
		loggerFor(ctx, f.logger).Info("fetch",
			"url", url,
			"bytes", size,
			"content_type", contentType,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
