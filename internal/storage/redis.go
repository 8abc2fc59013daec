package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCommander is the subset of the redis client used by RedisBackend
type RedisCommander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisBackend stores each collection under the key <prefix>:<name>
type RedisBackend struct {
	client RedisCommander
	prefix string
}

// NewRedisBackend creates a backend using client. An empty prefix defaults to "kanban".
func NewRedisBackend(client RedisCommander, prefix string) *RedisBackend {
	if prefix == "" {
		prefix = "kanban"
	}
	return &RedisBackend{client: client, prefix: prefix}
}

// Key returns the redis key for the named collection
func (b *RedisBackend) Key(name string) string {
	return b.prefix + ":" + name
}

// Load GETs the document
func (b *RedisBackend) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.Key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", b.Key(name), err)
	}
	return data, nil
}

// Save SETs the document without expiry
func (b *RedisBackend) Save(ctx context.Context, name string, data []byte) error {
	if err := b.client.Set(ctx, b.Key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", b.Key(name), err)
	}
	return nil
}
