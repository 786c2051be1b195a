// Package fs provides the host operating system implementation of
// llmsdoc.FileSystem.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/llmsdoc"
)

// Ensure FileSystem implements llmsdoc.FileSystem at compile time.
var _ llmsdoc.FileSystem = (*FileSystem)(nil)

// FileSystem implements llmsdoc.FileSystem on top of the os package.
// Contexts are accepted for interface compatibility; local file operations
// are not cancellable.
type FileSystem struct {
	// FileMode and DirMode are applied to created files and directories.
	FileMode os.FileMode
	DirMode  os.FileMode
}

// NewFileSystem creates a FileSystem with 0644 files and 0755 directories.
func NewFileSystem() *FileSystem {
	return &FileSystem{FileMode: 0644, DirMode: 0755}
}

func (f *FileSystem) ReadFile(_ context.Context, name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile writes data to a temporary file next to name and renames it
// into place so readers never observe a partial entry.
func (f *FileSystem) WriteFile(_ context.Context, name string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(name), filepath.Base(name)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, f.FileMode); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, name); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func (f *FileSystem) Stat(_ context.Context, name string) (llmsdoc.FileInfo, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return llmsdoc.FileInfo{}, err
	}
	return llmsdoc.FileInfo{Name: name, Size: fi.Size(), ModTime: fi.ModTime()}, nil
}

func (f *FileSystem) Remove(_ context.Context, name string) error {
	return os.Remove(name)
}

func (f *FileSystem) RemoveAll(_ context.Context, dir string) error {
	return os.RemoveAll(dir)
}

func (f *FileSystem) MkdirAll(_ context.Context, dir string) error {
	return os.MkdirAll(dir, f.DirMode)
}

// List returns regular files in dir matching pattern.
// Returns an error matching fs.ErrNotExist if dir does not exist.
func (f *FileSystem) List(_ context.Context, dir, pattern string) ([]llmsdoc.FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []llmsdoc.FileInfo
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if ok, err := filepath.Match(pattern, e.Name()); err != nil {
			return nil, err
		} else if !ok {
			continue
		}
		fi, err := e.Info()
		if errors.Is(err, iofs.ErrNotExist) {
			continue
		} else if err != nil {
			return nil, err
		}
		files = append(files, llmsdoc.FileInfo{
			Name:    filepath.Join(dir, e.Name()),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
	}
	return files, nil
}
