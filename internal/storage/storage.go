// Package storage persists whole collections as single JSON documents.
//
// A Backend stores raw document bytes by collection name. Collection adds the
// JSON codec on top. Writes always replace the full document and there are no
// transactions: a crash mid-write can leave a truncated document behind.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kanban-board-api/internal/metrics"
)

// Collection names
const (
	CollectionProjects = "projects"
	CollectionCourses  = "custom-courses"
)

var (
	// ErrNoDocument is returned by a Backend when the collection was never written
	ErrNoDocument = errors.New("storage: document does not exist")
	// ErrCorrupt marks a stored document that cannot be decoded
	ErrCorrupt = errors.New("storage: document is corrupt")
)

// Backend loads and saves raw collection documents
type Backend interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

// Collection is a typed view over one document in a Backend
type Collection[T any] struct {
	backend Backend
	name    string
	metrics *metrics.Metrics
}

// NewCollection creates a collection stored under name. m may be nil.
func NewCollection[T any](backend Backend, name string, m *metrics.Metrics) *Collection[T] {
	return &Collection[T]{
		backend: backend,
		name:    name,
		metrics: m,
	}
}

// Name returns the collection's document name
func (c *Collection[T]) Name() string {
	return c.name
}

// ReadAll returns every item in the collection, or an empty slice if the
// document does not exist yet. Undecodable documents yield an ErrCorrupt error.
func (c *Collection[T]) ReadAll(ctx context.Context) ([]T, error) {
	start := time.Now()
	items, err := c.readAll(ctx)
	c.record("read", start, err)
	return items, err
}

func (c *Collection[T]) readAll(ctx context.Context) ([]T, error) {
	data, err := c.backend.Load(ctx, c.name)
	if errors.Is(err, ErrNoDocument) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", c.name, err)
	}

	items := []T{}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrCorrupt, c.name)
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, c.name, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// WriteAll replaces the stored document with items
func (c *Collection[T]) WriteAll(ctx context.Context, items []T) error {
	start := time.Now()
	err := c.writeAll(ctx, items)
	c.record("write", start, err)
	return err
}

func (c *Collection[T]) writeAll(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.name, err)
	}
	if err := c.backend.Save(ctx, c.name, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.name, err)
	}
	return nil
}

func (c *Collection[T]) record(op string, start time.Time, err error) {
	if c.metrics != nil {
		c.metrics.RecordStorageOp(op, c.name, time.Since(start), err)
	}
}
