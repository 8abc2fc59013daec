package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend keeps each collection in <dir>/<name>.json
type FileBackend struct {
	dir string
}

// NewFileBackend creates a backend rooted at dir. The directory is created
// lazily on every read and write.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// Dir returns the data directory
func (b *FileBackend) Dir() string {
	return b.dir
}

// Path returns the file that holds the named collection
func (b *FileBackend) Path(name string) string {
	return filepath.Join(b.dir, name+".json")
}

// Load reads the collection file
func (b *FileBackend) Load(_ context.Context, name string) ([]byte, error) {
	if err := b.ensureDir(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(b.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.Path(name), err)
	}
	return data, nil
}

// Save overwrites the collection file in place
func (b *FileBackend) Save(_ context.Context, name string, data []byte) error {
	if err := b.ensureDir(); err != nil {
		return err
	}

	if err := os.WriteFile(b.Path(name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", b.Path(name), err)
	}
	return nil
}

func (b *FileBackend) ensureDir() error {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", b.dir, err)
	}
	return nil
}
