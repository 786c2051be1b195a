package mock

import (
	"context"

	"github.com/fwojciec/llmsdoc"
)

var _ llmsdoc.DocumentationService = (*DocumentationService)(nil)

// DocumentationService is a mock implementation of llmsdoc.DocumentationService.
type DocumentationService struct {
	InitializeFn          func(ctx context.Context) llmsdoc.InitResult
	IndexFn               func() *llmsdoc.DocIndex
	DocumentationIndexFn  func(ctx context.Context) (string, error)
	FullDocumentationFn   func(ctx context.Context) (string, error)
	DocumentationPageFn   func(ctx context.Context, path string) (string, error)
	PageFn                func(ctx context.Context, path string) (*llmsdoc.PageDocument, error)
	SearchDocumentationFn func(ctx context.Context, query string, limit int) ([]llmsdoc.SearchResult, error)
	RelevantContextFn     func(ctx context.Context, question string, maxSections int) (string, error)
}

func (s *DocumentationService) Initialize(ctx context.Context) llmsdoc.InitResult {
	return s.InitializeFn(ctx)
}

func (s *DocumentationService) Index() *llmsdoc.DocIndex {
	return s.IndexFn()
}

func (s *DocumentationService) DocumentationIndex(ctx context.Context) (string, error) {
	return s.DocumentationIndexFn(ctx)
}

func (s *DocumentationService) FullDocumentation(ctx context.Context) (string, error) {
	return s.FullDocumentationFn(ctx)
}

func (s *DocumentationService) DocumentationPage(ctx context.Context, path string) (string, error) {
	return s.DocumentationPageFn(ctx, path)
}

func (s *DocumentationService) Page(ctx context.Context, path string) (*llmsdoc.PageDocument, error) {
	return s.PageFn(ctx, path)
}

func (s *DocumentationService) SearchDocumentation(ctx context.Context, query string, limit int) ([]llmsdoc.SearchResult, error) {
	return s.SearchDocumentationFn(ctx, query, limit)
}

func (s *DocumentationService) RelevantContext(ctx context.Context, question string, maxSections int) (string, error) {
	return s.RelevantContextFn(ctx, question, maxSections)
}
