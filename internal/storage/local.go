package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStorage stores photos as files in a single output directory.
type LocalStorage struct {
	dir string
}

// NewLocalStorage creates the output directory if needed.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Dir returns the output directory.
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Save writes the photo to disk and returns its path.
func (s *LocalStorage) Save(_ context.Context, name string, data []byte) (string, error) {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write photo file: %w", err)
	}
	return path, nil
}

// Exists reports whether the file is present in the output directory.
func (s *LocalStorage) Exists(_ context.Context, name string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.dir, name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat photo file: %w", err)
}

// Delete removes the file. A missing file is not an error.
func (s *LocalStorage) Delete(_ context.Context, name string) error {
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete photo file: %w", err)
	}
	return nil
}
