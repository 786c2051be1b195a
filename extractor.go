package llmsdoc

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with navigation,
	// footers and sidebars removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages. Documentation hosts
// that answer a bare page path with a rendered site page are reduced to
// their article body this way before conversion to markdown.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Extractors tries each Extractor in order and returns the first result.
// If every extractor fails, the last error is returned.
type Extractors []Extractor

func (es Extractors) Extract(html string) (*ExtractResult, error) {
	if len(es) == 0 {
		return nil, Errorf(EINTERNAL, "no extractor configured")
	}

	var lastErr error
	for _, e := range es {
		res, err := e.Extract(html)
		if err == nil {
			return res, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
