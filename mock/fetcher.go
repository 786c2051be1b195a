package mock

import (
	"context"

	"github.com/fwojciec/llmsdoc"
)

var _ llmsdoc.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of llmsdoc.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*llmsdoc.Resource, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*llmsdoc.Resource, error) {
	return f.FetchFn(ctx, url)
}
