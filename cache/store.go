// Package cache provides the two-tier documentation cache: a short-lived
// in-memory map in front of a longer-lived disk tier.
package cache

import (
	"context"
	"encoding/hex"
	"errors"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fwojciec/llmsdoc"
	"github.com/zeebo/blake3"
)

// Default time-to-live of each tier.
const (
	DefaultMemoryTTL = time.Hour
	DefaultDiskTTL   = 24 * time.Hour
)

// fileExt is the extension of every file the disk tier writes.
const fileExt = ".cache"

// Ensure Store implements llmsdoc.ContentStore at compile time.
var _ llmsdoc.ContentStore = (*Store)(nil)

type entry struct {
	content  string
	storedAt time.Time
	etag     string
}

// Store implements llmsdoc.ContentStore. Memory entries live for the memory
// TTL; disk files live for the disk TTL measured from their modification
// time. Staleness is evaluated on read. Memory is never evicted except by
// Prune and Clear.
type Store struct {
	fsys      llmsdoc.FileSystem
	dir       string
	memoryTTL time.Duration
	diskTTL   time.Duration
	now       func() time.Time

	mu      sync.Mutex
	entries map[llmsdoc.CacheKey]entry
}

// Option configures a Store.
type Option func(*Store)

// WithMemoryTTL sets the memory tier time-to-live.
// Defaults to DefaultMemoryTTL (1h) if not specified.
func WithMemoryTTL(d time.Duration) Option {
	return func(s *Store) {
		s.memoryTTL = d
	}
}

// WithDiskTTL sets the disk tier time-to-live.
// Defaults to DefaultDiskTTL (24h) if not specified.
func WithDiskTTL(d time.Duration) Option {
	return func(s *Store) {
		s.diskTTL = d
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a Store whose disk tier lives in dir on fsys.
func NewStore(fsys llmsdoc.FileSystem, dir string, opts ...Option) *Store {
	s := &Store{
		fsys:      fsys,
		dir:       dir,
		memoryTTL: DefaultMemoryTTL,
		diskTTL:   DefaultDiskTTL,
		now:       time.Now,
		entries:   make(map[llmsdoc.CacheKey]entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the directory of the disk tier.
func (s *Store) Dir() string {
	return s.dir
}

// DiskPath returns the file the disk tier uses for key. Only a fixed-width
// digest of the key appears in the name.
func (s *Store) DiskPath(key llmsdoc.CacheKey) string {
	sum := blake3.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:16])+fileExt)
}

// Get returns live content for key, consulting memory before disk. A disk
// hit is promoted into memory with a fresh timestamp and no etag. Disk
// errors are reported as a miss.
func (s *Store) Get(ctx context.Context, key llmsdoc.CacheKey) (string, bool) {
	now := s.now()

	s.mu.Lock()
	e, ok := s.entries[key]
	s.mu.Unlock()
	if ok && now.Sub(e.storedAt) < s.memoryTTL {
		Hits.WithLabelValues("memory").Inc()
		return e.content, true
	}

	name := s.DiskPath(key)
	info, err := s.fsys.Stat(ctx, name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			Errors.WithLabelValues("stat").Inc()
		}
		Misses.Inc()
		return "", false
	}
	if now.Sub(info.ModTime) >= s.diskTTL {
		Misses.Inc()
		return "", false
	}

	data, err := s.fsys.ReadFile(ctx, name)
	if err != nil {
		Errors.WithLabelValues("read").Inc()
		Misses.Inc()
		return "", false
	}

	content := string(data)
	s.mu.Lock()
	s.entries[key] = entry{content: content, storedAt: s.now()}
	s.mu.Unlock()

	Hits.WithLabelValues("disk").Inc()
	return content, true
}

// Set stores content in memory and writes it through to disk before
// returning. A failed disk write is returned as ESTORAGE; the memory
// entry is kept.
func (s *Store) Set(ctx context.Context, key llmsdoc.CacheKey, content, etag string) error {
	s.mu.Lock()
	s.entries[key] = entry{content: content, storedAt: s.now(), etag: etag}
	s.mu.Unlock()

	if err := s.fsys.MkdirAll(ctx, s.dir); err != nil {
		Errors.WithLabelValues("set").Inc()
		return llmsdoc.Wrapf(llmsdoc.ESTORAGE, err, "create cache directory %q", s.dir)
	}

	name := s.DiskPath(key)
	if err := s.fsys.WriteFile(ctx, name, []byte(content)); err != nil {
		Errors.WithLabelValues("set").Inc()
		return llmsdoc.Wrapf(llmsdoc.ESTORAGE, err, "write cache entry %q to %q", key, name)
	}
	return nil
}

// Has reports whether Get would return content. It performs a full Get,
// including any disk read and promotion.
func (s *Store) Has(ctx context.Context, key llmsdoc.CacheKey) bool {
	_, ok := s.Get(ctx, key)
	return ok
}

// ETag returns the etag recorded with the memory entry for key.
func (s *Store) ETag(key llmsdoc.CacheKey) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || e.etag == "" {
		return "", false
	}
	return e.etag, true
}

// Clear drops every memory entry and removes the disk tier directory.
// A missing directory is not an error.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.entries = make(map[llmsdoc.CacheKey]entry)
	s.mu.Unlock()

	if err := s.fsys.RemoveAll(ctx, s.dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return llmsdoc.Wrapf(llmsdoc.ESTORAGE, err, "remove cache directory %q", s.dir)
	}
	return nil
}

// Prune removes memory entries at or past the memory TTL and disk files at
// or past the disk TTL. Live entries are never touched.
func (s *Store) Prune(ctx context.Context) error {
	now := s.now()

	s.mu.Lock()
	for key, e := range s.entries {
		if now.Sub(e.storedAt) >= s.memoryTTL {
			delete(s.entries, key)
			Pruned.WithLabelValues("memory").Inc()
		}
	}
	s.mu.Unlock()

	files, err := s.fsys.List(ctx, s.dir, "*"+fileExt)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return llmsdoc.Wrapf(llmsdoc.ESTORAGE, err, "list cache directory %q", s.dir)
	}

	var firstErr error
	for _, f := range files {
		if now.Sub(f.ModTime) < s.diskTTL {
			continue
		}
		if err := s.fsys.Remove(ctx, f.Name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			Errors.WithLabelValues("prune").Inc()
			if firstErr == nil {
				firstErr = llmsdoc.Wrapf(llmsdoc.ESTORAGE, err, "remove cache file %q", f.Name)
			}
			continue
		}
		Pruned.WithLabelValues("disk").Inc()
	}
	return firstErr
}

// Stats reports entry counts and sizes. Memory size is the sum of key and
// content lengths; disk figures come from the cache files on disk.
func (s *Store) Stats(ctx context.Context) (llmsdoc.CacheStats, error) {
	var stats llmsdoc.CacheStats

	s.mu.Lock()
	stats.MemoryEntries = len(s.entries)
	for key, e := range s.entries {
		stats.MemorySize += len(key) + len(e.content)
	}
	s.mu.Unlock()

	files, err := s.fsys.List(ctx, s.dir, "*"+fileExt)
	if errors.Is(err, fs.ErrNotExist) {
		return stats, nil
	} else if err != nil {
		return stats, llmsdoc.Wrapf(llmsdoc.ESTORAGE, err, "list cache directory %q", s.dir)
	}
	for _, f := range files {
		stats.DiskEntries++
		stats.DiskSize += f.Size
	}
	return stats, nil
}
