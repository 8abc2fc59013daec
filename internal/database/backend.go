package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"kanban-board-api/internal/config"
	"kanban-board-api/internal/storage"
)

// Backend is an opened storage backend plus its health check and cleanup
type Backend struct {
	storage.Backend
	ping  func(ctx context.Context) error
	close func() error
}

// Ping reports whether the backend's server is reachable. File and memory
// backends are always ready.
func (b *Backend) Ping(ctx context.Context) error {
	if b.ping == nil {
		return nil
	}
	return b.ping(ctx)
}

// Close releases connections held by the backend
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackend opens the storage backend selected by cfg.Storage.Driver
func OpenBackend(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverFile:
		log.Info("Using file storage", zap.String("data_dir", cfg.Storage.DataDir))
		return &Backend{Backend: storage.NewFileBackend(cfg.Storage.DataDir)}, nil

	case config.DriverMemory:
		log.Warn("Using in-memory storage, data is lost on restart")
		return &Backend{Backend: storage.NewMemoryBackend()}, nil

	case config.DriverSQLite, config.DriverPostgres:
		db, err := New(FromConfig(cfg))
		if err != nil {
			return nil, err
		}
		backend, err := storage.NewGormBackend(db)
		if err != nil {
			Close(db)
			return nil, err
		}
		log.Info("Using database storage", zap.String("driver", cfg.Storage.Driver))
		return &Backend{
			Backend: backend,
			ping:    func(ctx context.Context) error { return Ping(ctx, db) },
			close:   func() error { return Close(db) },
		}, nil

	case config.DriverRedis:
		client, err := NewRedis(ctx, cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Backend: storage.NewRedisBackend(client, cfg.Redis.Prefix),
			ping:    func(ctx context.Context) error { return client.Ping(ctx).Err() },
			close:   client.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
