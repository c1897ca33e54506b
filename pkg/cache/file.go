package cache

import (
	"context"
	"os"
	"path/filepath"
)

// FileStore keeps the record in a single JSON file.
// Writes go to a temporary file in the same directory which is then renamed
// over the target, so readers never observe a partial record.
type FileStore struct {
	path string
}

// NewFileStore creates a file store at path. The parent directory is created
// if it doesn't exist.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, storeErr("file", "init", err)
	}
	return &FileStore{path: path}, nil
}

// DefaultPath returns the default cache file location,
// typically ~/.cache/hovercard/previews.json.
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "hovercard", "previews.json")
}

// Path returns the file backing this store.
func (s *FileStore) Path() string { return s.path }

// Read returns the file contents, or nil if the file does not exist.
func (s *FileStore) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	return data, storeErr("file", "read", err)
}

// Write atomically replaces the file contents.
func (s *FileStore) Write(ctx context.Context, record []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".previews-*.tmp")
	if err != nil {
		return storeErr("file", "write", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(record); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return storeErr("file", "write", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return storeErr("file", "write", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return storeErr("file", "write", err)
	}
	return nil
}

// Close does nothing for file store.
func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
