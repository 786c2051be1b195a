package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/llmsdoc"
)

// Ensure LoggingService implements llmsdoc.DocumentationService.
var _ llmsdoc.DocumentationService = (*LoggingService)(nil)

// LoggingService wraps a DocumentationService with logging.
type LoggingService struct {
	next   llmsdoc.DocumentationService
	logger *slog.Logger
}

// NewLoggingService creates a new LoggingService.
func NewLoggingService(next llmsdoc.DocumentationService, logger *slog.Logger) *LoggingService {
	return &LoggingService{next: next, logger: logger}
}

// Initialize logs the loaded index, or a warning when the service starts
// without one.
func (s *LoggingService) Initialize(ctx context.Context) llmsdoc.InitResult {
	begin := time.Now()
	result := s.next.Initialize(ctx)
	if result.Degraded() {
		loggerFor(ctx, s.logger).Warn("failed to load documentation index",
			"duration", time.Since(begin),
			"err", result.Err,
		)
		return result
	}

	var title string
	var links int
	if result.Index != nil {
		title = result.Index.Title
		links = result.Index.LinkCount()
	}
	loggerFor(ctx, s.logger).Info("documentation index loaded",
		"title", title,
		"links", links,
		"duration", time.Since(begin),
	)
	return result
}

func (s *LoggingService) Index() *llmsdoc.DocIndex {
	return s.next.Index()
}

func (s *LoggingService) DocumentationIndex(ctx context.Context) (content string, err error) {
	defer func(begin time.Time) {
		loggerFor(ctx, s.logger).Info("documentation index",
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DocumentationIndex(ctx)
}

func (s *LoggingService) FullDocumentation(ctx context.Context) (content string, err error) {
	defer func(begin time.Time) {
		loggerFor(ctx, s.logger).Info("full documentation",
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FullDocumentation(ctx)
}

func (s *LoggingService) DocumentationPage(ctx context.Context, path string) (content string, err error) {
	defer func(begin time.Time) {
		loggerFor(ctx, s.logger).Info("documentation page",
			"path", path,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DocumentationPage(ctx, path)
}

func (s *LoggingService) Page(ctx context.Context, path string) (doc *llmsdoc.PageDocument, err error) {
	defer func(begin time.Time) {
		var headings int
		if doc != nil {
			headings = len(doc.Headings)
		}
		loggerFor(ctx, s.logger).Info("structured page",
			"path", path,
			"headings", headings,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Page(ctx, path)
}

func (s *LoggingService) SearchDocumentation(ctx context.Context, query string, limit int) (results []llmsdoc.SearchResult, err error) {
	defer func(begin time.Time) {
		loggerFor(ctx, s.logger).Info("search",
			"query", query,
			"limit", limit,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchDocumentation(ctx, query, limit)
}

func (s *LoggingService) RelevantContext(ctx context.Context, question string, maxSections int) (docContext string, err error) {
	defer func(begin time.Time) {
		loggerFor(ctx, s.logger).Info("relevant context",
			"max_sections", maxSections,
			"bytes", len(docContext),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.RelevantContext(ctx, question, maxSections)
}
