package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	iofs "io/fs"
	"path"
	"path/filepath"
	"time"

	"github.com/fwojciec/llmsdoc"
)

// Compile-time interface verification.
var _ llmsdoc.FileSystem = (*FileSystem)(nil)

// FileSystem implements llmsdoc.FileSystem with one row per file.
// Directories are implicit: a directory exists while it holds files.
type FileSystem struct {
	db *DB

	// Now stamps modification times. Defaults to time.Now.
	Now func() time.Time
}

// NewFileSystem creates a new FileSystem.
func NewFileSystem(db *DB) *FileSystem {
	return &FileSystem{db: db, Now: time.Now}
}

// clean normalizes name to a slash-separated path.
func clean(name string) string {
	return path.Clean(filepath.ToSlash(name))
}

func notExist(op, name string) error {
	return &iofs.PathError{Op: op, Path: name, Err: iofs.ErrNotExist}
}

// ReadFile returns the contents of name.
func (f *FileSystem) ReadFile(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := f.db.QueryRowContext(ctx, `SELECT data FROM files WHERE path = ?`, clean(name)).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, notExist("read", name)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// WriteFile creates or replaces name and sets its modification time to Now.
func (f *FileSystem) WriteFile(ctx context.Context, name string, data []byte) error {
	p := clean(name)
	if data == nil {
		data = []byte{}
	}
	_, err := f.db.ExecContext(ctx, `
		INSERT INTO files (path, dir, data, size, mod_time)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			data = excluded.data,
			size = excluded.size,
			mod_time = excluded.mod_time
	`, p, path.Dir(p), data, len(data), f.Now().UnixNano())
	return err
}

// Stat returns size and modification time of name.
func (f *FileSystem) Stat(ctx context.Context, name string) (llmsdoc.FileInfo, error) {
	var size, modTime int64
	err := f.db.QueryRowContext(ctx, `SELECT size, mod_time FROM files WHERE path = ?`, clean(name)).Scan(&size, &modTime)
	if err == sql.ErrNoRows {
		return llmsdoc.FileInfo{}, notExist("stat", name)
	}
	if err != nil {
		return llmsdoc.FileInfo{}, err
	}
	return llmsdoc.FileInfo{Name: name, Size: size, ModTime: time.Unix(0, modTime)}, nil
}

// Remove deletes name.
func (f *FileSystem) Remove(ctx context.Context, name string) error {
	result, err := f.db.ExecContext(ctx, `DELETE FROM files WHERE path = ?`, clean(name))
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notExist("remove", name)
	}
	return nil
}

// RemoveAll deletes dir and every file below it.
func (f *FileSystem) RemoveAll(ctx context.Context, dir string) error {
	d := clean(dir)
	prefix := d + "/"
	_, err := f.db.ExecContext(ctx, `
		DELETE FROM files
		WHERE path = ? OR dir = ? OR substr(dir, 1, ?) = ?
	`, d, d, len(prefix), prefix)
	if err != nil {
		return fmt.Errorf("remove %s: %w", dir, err)
	}
	return nil
}

// MkdirAll is a no-op; directories come into existence with their files.
func (f *FileSystem) MkdirAll(_ context.Context, _ string) error {
	return nil
}

// List returns files directly in dir whose base name matches pattern.
func (f *FileSystem) List(ctx context.Context, dir, pattern string) ([]llmsdoc.FileInfo, error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, err
	}

	rows, err := f.db.QueryContext(ctx, `
		SELECT path, size, mod_time FROM files WHERE dir = ? ORDER BY path
	`, clean(dir))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []llmsdoc.FileInfo
	for rows.Next() {
		var (
			p             string
			size, modTime int64
		)
		if err := rows.Scan(&p, &size, &modTime); err != nil {
			return nil, err
		}
		if ok, _ := path.Match(pattern, path.Base(p)); !ok {
			continue
		}
		files = append(files, llmsdoc.FileInfo{
			Name:    filepath.FromSlash(p),
			Size:    size,
			ModTime: time.Unix(0, modTime),
		})
	}
	return files, rows.Err()
}
