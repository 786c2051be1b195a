package llmsdoc

import (
	"context"
	"mime"
)

// Resource is the body of a successful remote fetch.
type Resource struct {
	URL         string
	Content     string
	ContentType string
	ETag        string
}

// IsHTML reports whether the resource was served as an HTML document.
func (r *Resource) IsHTML() bool {
	mediaType, _, err := mime.ParseMediaType(r.ContentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// Fetcher retrieves documents over the network.
type Fetcher interface {
	// Fetch requests url and returns its body. Any non-2xx status is
	// reported as EUPSTREAM and never as empty content.
	Fetch(ctx context.Context, url string) (*Resource, error)
}
