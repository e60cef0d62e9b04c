package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "photos")

	s, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("output directory not created: %v", err)
	}

	path, err := s.Save(ctx, "cat.jpg", []byte("image-bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != filepath.Join(dir, "cat.jpg") {
		t.Errorf("unexpected stored path: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("stored content mismatch: %q", data)
	}

	exists, err := s.Exists(ctx, "cat.jpg")
	if err != nil || !exists {
		t.Errorf("Exists(cat.jpg) = %v, %v; want true, nil", exists, err)
	}
	exists, err = s.Exists(ctx, "dog.jpg")
	if err != nil || exists {
		t.Errorf("Exists(dog.jpg) = %v, %v; want false, nil", exists, err)
	}

	if err := s.Delete(ctx, "cat.jpg"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	exists, _ = s.Exists(ctx, "cat.jpg")
	if exists {
		t.Error("file still exists after Delete")
	}

	// Deleting a missing file is not an error
	if err := s.Delete(ctx, "cat.jpg"); err != nil {
		t.Errorf("Delete of missing file: %v", err)
	}
}

func TestLocalStorageSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	if _, err := s.Save(ctx, "a.jpg", []byte("v1")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	path, err := s.Save(ctx, "a.jpg", []byte("v2"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "v2" {
		t.Errorf("expected overwrite, got %q", data)
	}
}

func TestNewLocalStorageRequiresDir(t *testing.T) {
	if _, err := NewLocalStorage(""); err == nil {
		t.Error("expected error for empty directory")
	}
}
