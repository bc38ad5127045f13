package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"todo/config"
)

// Backend is a key-value store holding serialized values.
// This allows swapping between file, sqlite, mysql or in-memory storage.
type Backend interface {
	// Get returns the value stored under key. ok is false if the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Open creates the backend selected by cfg.Backend
func Open(ctx context.Context, cfg config.StorageConfig) (Backend, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileBackend(cfg.Path)
	case config.BackendSQLite:
		path := cfg.Path
		if filepath.Ext(path) == "" {
			path = filepath.Join(path, "todo.db")
		}
		return OpenSQLite(ctx, path)
	case config.BackendMySQL:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("mysql backend requires storage.dsn")
		}
		return OpenMySQL(ctx, cfg.DSN)
	case config.BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
