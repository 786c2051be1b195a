// Package readability provides a fallback llmsdoc.Extractor built on the
// Mozilla Readability port.
package readability

import (
	"strings"

	"github.com/fwojciec/llmsdoc"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements llmsdoc.Extractor at compile time.
var _ llmsdoc.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article body of rawHTML. A page without readable
// content is ENOTFOUND.
func (e *Extractor) Extract(rawHTML string) (*llmsdoc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, llmsdoc.Errorf(llmsdoc.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, llmsdoc.Wrapf(llmsdoc.ENOTFOUND, err, "no readable content")
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, llmsdoc.Errorf(llmsdoc.ENOTFOUND, "no readable content")
	}

	return &llmsdoc.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
