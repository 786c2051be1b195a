package llmsdoc

import (
	"context"
	"time"
)

// FileInfo describes a file returned by a FileSystem.
type FileInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// FileSystem is the storage capability used by the disk tier of the cache.
// Missing files are reported with errors matching fs.ErrNotExist.
type FileSystem interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)

	// WriteFile replaces the file contents and refreshes its modification time.
	WriteFile(ctx context.Context, name string, data []byte) error

	Stat(ctx context.Context, name string) (FileInfo, error)
	Remove(ctx context.Context, name string) error

	// RemoveAll removes dir and everything below it.
	// A missing dir is not an error.
	RemoveAll(ctx context.Context, dir string) error

	MkdirAll(ctx context.Context, dir string) error

	// List returns the regular files directly inside dir whose base name
	// matches pattern (path.Match syntax). Names are full paths.
	List(ctx context.Context, dir, pattern string) ([]FileInfo, error)
}
