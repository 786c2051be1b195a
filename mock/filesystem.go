package mock

import (
	"context"

	"github.com/fwojciec/llmsdoc"
)

var _ llmsdoc.FileSystem = (*FileSystem)(nil)

// FileSystem is a mock implementation of llmsdoc.FileSystem.
type FileSystem struct {
	ReadFileFn  func(ctx context.Context, name string) ([]byte, error)
	WriteFileFn func(ctx context.Context, name string, data []byte) error
	StatFn      func(ctx context.Context, name string) (llmsdoc.FileInfo, error)
	RemoveFn    func(ctx context.Context, name string) error
	RemoveAllFn func(ctx context.Context, dir string) error
	MkdirAllFn  func(ctx context.Context, dir string) error
	ListFn      func(ctx context.Context, dir, pattern string) ([]llmsdoc.FileInfo, error)
}

func (f *FileSystem) ReadFile(ctx context.Context, name string) ([]byte, error) {
	return f.ReadFileFn(ctx, name)
}

func (f *FileSystem) WriteFile(ctx context.Context, name string, data []byte) error {
	return f.WriteFileFn(ctx, name, data)
}

func (f *FileSystem) Stat(ctx context.Context, name string) (llmsdoc.FileInfo, error) {
	return f.StatFn(ctx, name)
}

func (f *FileSystem) Remove(ctx context.Context, name string) error {
	return f.RemoveFn(ctx, name)
}

func (f *FileSystem) RemoveAll(ctx context.Context, dir string) error {
	return f.RemoveAllFn(ctx, dir)
}

func (f *FileSystem) MkdirAll(ctx context.Context, dir string) error {
	return f.MkdirAllFn(ctx, dir)
}

func (f *FileSystem) List(ctx context.Context, dir, pattern string) ([]llmsdoc.FileInfo, error) {
	return f.ListFn(ctx, dir, pattern)
}
