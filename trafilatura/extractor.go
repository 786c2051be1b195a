// Package trafilatura reduces rendered documentation pages to their article
// body using go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/llmsdoc"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements llmsdoc.Extractor at compile time.
var _ llmsdoc.Extractor = (*Extractor)(nil)

// Extractor extracts the main content of a documentation page, dropping
// site navigation, sidebars and footers. Links are kept so that the
// converted markdown still points at neighbouring pages.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the title and main content of rawHTML.
// Blank input is EINVALID; a page without extractable content is ENOTFOUND.
func (e *Extractor) Extract(rawHTML string) (*llmsdoc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, llmsdoc.Errorf(llmsdoc.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
		IncludeLinks:   true,
	})
	if err != nil {
		return nil, llmsdoc.Wrapf(llmsdoc.ENOTFOUND, err, "no main content in page")
	}
	if result.ContentNode == nil {
		return nil, llmsdoc.Errorf(llmsdoc.ENOTFOUND, "no main content in page")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, llmsdoc.Wrapf(llmsdoc.EINTERNAL, err, "render extracted content")
	}

	return &llmsdoc.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		ContentHTML: buf.String(),
	}, nil
}
