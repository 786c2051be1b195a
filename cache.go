package llmsdoc

import (
	"context"
	"strings"
)

// CacheKey identifies a cacheable artifact. Keys are stable across process
// restarts because the disk tier derives file names from them.
type CacheKey string

// Keys of the two corpus-level artifacts.
const (
	IndexKey CacheKey = "llms.txt"
	FullKey  CacheKey = "llms-full.txt"
)

// PageKey returns the cache key of a single documentation page.
// A leading slash is not significant.
func PageKey(path string) CacheKey {
	return CacheKey("page:" + strings.TrimPrefix(path, "/"))
}

// CacheStats reports the size of both cache tiers.
type CacheStats struct {
	MemoryEntries int   `json:"memoryEntries"`
	MemorySize    int   `json:"memorySize"`
	DiskEntries   int   `json:"diskEntries"`
	DiskSize      int64 `json:"diskSize"`
}

// ContentStore is a key/value cache for fetched documentation. It never
// fetches on its own; callers fill it after a successful remote fetch.
type ContentStore interface {
	// Get returns cached content for key. The boolean is false when the key
	// was never stored, has expired in both tiers, or the disk tier could
	// not be read.
	Get(ctx context.Context, key CacheKey) (string, bool)

	// Set stores content in memory and writes it through to disk.
	// Disk write failures are returned as ESTORAGE.
	Set(ctx context.Context, key CacheKey, content, etag string) error

	// Has reports whether Get would return content.
	Has(ctx context.Context, key CacheKey) bool

	// ETag returns the entity tag recorded with the in-memory entry.
	// Entries promoted from disk carry no tag.
	ETag(key CacheKey) (string, bool)

	// Clear drops all memory entries and removes the disk tier.
	Clear(ctx context.Context) error

	// Prune deletes expired entries from both tiers.
	Prune(ctx context.Context) error

	// Stats reports entry counts and sizes of both tiers.
	Stats(ctx context.Context) (CacheStats, error)
}
