package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore accepts a byte blob and returns a retrievable path. The booking
// core only depends on this contract; swapping in an object store later means
// implementing the same interface.
type FileStore interface {
	Save(category, filename string, data []byte) (string, error)
}

// LocalStore writes blobs under a root directory, one subdirectory per
// category (proofs, receipts).
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if root == "" {
		root = "storage/"
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create storage root %s: %w", root, err)
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Save(category, filename string, data []byte) (string, error) {
	// Filenames are generated internally; sanitize anyway so an uploaded
	// original name can never escape the category directory.
	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." {
		return "", fmt.Errorf("empty filename")
	}

	dir := filepath.Join(s.root, category)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create storage dir %s: %w", dir, err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return path, nil
}
