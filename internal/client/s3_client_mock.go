package client

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MockBackupStore implements BackupStore in memory for testing without AWS credentials
type MockBackupStore struct {
	KeyPrefix string

	// Optional function overrides for custom test behavior
	UploadFunc func(ctx context.Context, key string, data []byte) error
	ListFunc   func(ctx context.Context, prefix string) ([]string, error)
	DeleteFunc func(ctx context.Context, key string) error

	mu      sync.Mutex
	Objects map[string][]byte
}

// NewMockBackupStore creates an empty mock store
func NewMockBackupStore(prefix string) *MockBackupStore {
	return &MockBackupStore{
		KeyPrefix: prefix,
		Objects:   map[string][]byte{},
	}
}

// Prefix returns the configured key prefix
func (m *MockBackupStore) Prefix() string {
	return m.KeyPrefix
}

// Upload stores the object in memory
func (m *MockBackupStore) Upload(ctx context.Context, key string, data []byte) error {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, key, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = append([]byte(nil), data...)
	return nil
}

// List returns the stored keys under prefix, sorted
func (m *MockBackupStore) List(ctx context.Context, prefix string) ([]string, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, prefix)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for key := range m.Objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Delete removes the object
func (m *MockBackupStore) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, key)
	return nil
}

// Ensure MockBackupStore implements BackupStore
var _ BackupStore = (*MockBackupStore)(nil)
