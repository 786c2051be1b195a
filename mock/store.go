package mock

import (
	"context"

	"github.com/fwojciec/llmsdoc"
)

var _ llmsdoc.ContentStore = (*ContentStore)(nil)

// ContentStore is a mock implementation of llmsdoc.ContentStore.
type ContentStore struct {
	GetFn   func(ctx context.Context, key llmsdoc.CacheKey) (string, bool)
	SetFn   func(ctx context.Context, key llmsdoc.CacheKey, content, etag string) error
	HasFn   func(ctx context.Context, key llmsdoc.CacheKey) bool
	ETagFn  func(key llmsdoc.CacheKey) (string, bool)
	ClearFn func(ctx context.Context) error
	PruneFn func(ctx context.Context) error
	StatsFn func(ctx context.Context) (llmsdoc.CacheStats, error)
}

func (s *ContentStore) Get(ctx context.Context, key llmsdoc.CacheKey) (string, bool) {
	return s.GetFn(ctx, key)
}

func (s *ContentStore) Set(ctx context.Context, key llmsdoc.CacheKey, content, etag string) error {
	return s.SetFn(ctx, key, content, etag)
}

func (s *ContentStore) Has(ctx context.Context, key llmsdoc.CacheKey) bool {
	return s.HasFn(ctx, key)
}

func (s *ContentStore) ETag(key llmsdoc.CacheKey) (string, bool) {
	return s.ETagFn(key)
}

func (s *ContentStore) Clear(ctx context.Context) error {
	return s.ClearFn(ctx)
}

func (s *ContentStore) Prune(ctx context.Context) error {
	return s.PruneFn(ctx)
}

func (s *ContentStore) Stats(ctx context.Context) (llmsdoc.CacheStats, error) {
	return s.StatsFn(ctx)
}
