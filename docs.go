package llmsdoc

import "context"

// DocumentationService is the retrieval core exposed to protocol layers.
type DocumentationService interface {
	// Initialize loads and parses the index manifest. A failure leaves the
	// service usable; the result reports why the index is missing.
	Initialize(ctx context.Context) InitResult

	// Index returns the structure parsed by Initialize, or nil.
	Index() *DocIndex

	// DocumentationIndex returns the raw index manifest.
	DocumentationIndex(ctx context.Context) (string, error)

	// FullDocumentation returns the full documentation corpus.
	FullDocumentation(ctx context.Context) (string, error)

	// DocumentationPage returns a single page.
	// Returns ENOTFOUND if the page cannot be fetched under any variant.
	DocumentationPage(ctx context.Context, path string) (string, error)

	// Page returns a page with its source URL, entity tag and headings.
	Page(ctx context.Context, path string) (*PageDocument, error)

	// SearchDocumentation ranks corpus sections against query.
	SearchDocumentation(ctx context.Context, query string, limit int) ([]SearchResult, error)

	// RelevantContext assembles up to maxSections sections for question.
	RelevantContext(ctx context.Context, question string, maxSections int) (string, error)
}

// InitResult is the outcome of DocumentationService.Initialize.
type InitResult struct {
	Index *DocIndex

	// Err is the reason the index could not be loaded.
	Err error
}

// Degraded reports whether initialization failed.
func (r InitResult) Degraded() bool {
	return r.Err != nil
}
