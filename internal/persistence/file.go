package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStorage keeps each key as a JSON document under a base directory.
// It is the default backend: a single local file is all a single-device
// store needs.
type FileStorage struct {
	dir string
}

// NewFileStorage creates a file-backed Storage rooted at dir. The
// directory is created lazily on first save.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Load reads the document for key, or ErrNotFound if it was never saved.
func (f *FileStorage) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	return data, nil
}

// Save writes the document via a temp file and rename, so a crash mid-write
// never leaves a truncated snapshot behind.
func (f *FileStorage) Save(ctx context.Context, key string, data []byte) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Close is a no-op; files are closed per operation.
func (f *FileStorage) Close() error {
	return nil
}
