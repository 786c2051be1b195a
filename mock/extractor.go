package mock

import "github.com/fwojciec/llmsdoc"

var _ llmsdoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of llmsdoc.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*llmsdoc.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*llmsdoc.ExtractResult, error) {
	return e.ExtractFn(html)
}
