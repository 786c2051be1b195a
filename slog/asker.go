package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/llmsdoc"
)

// Ensure LoggingAsker implements llmsdoc.Asker.
var _ llmsdoc.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker with logging. Question text is not logged.
type LoggingAsker struct {
	next   llmsdoc.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next llmsdoc.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped asker and logs the outcome.
func (a *LoggingAsker) Ask(ctx context.Context, question, docContext string) (answer string, err error) {
	defer func(begin time.Time) {
		loggerFor(ctx, a.logger).Info("ask",
			"question_chars", len(question),
			"context_chars", len(docContext),
			"answer_chars", len(answer),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Ask(ctx, question, docContext)
}
