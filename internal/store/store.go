// Package store is the key/value persistence capability the tracker writes
// its state through. Values are opaque JSON documents keyed by slot name.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when a key has never been written or has
// been cleared.
var ErrNotFound = errors.New("key not found")

// ErrDecode is wrapped by GetJSON when a stored value does not decode.
var ErrDecode = errors.New("stored value does not decode")

// Store persists whole values per key. Implementations are safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Clear removes every key.
	Clear(ctx context.Context) error
	Close() error
}

// Backend driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects and configures a backend.
type Config struct {
	Driver     string
	DataDir    string // file
	SQLitePath string // sqlite
	DBURL      string // postgres
}

// Open constructs the backend named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverFile:
		return NewFileStore(cfg.DataDir)
	case DriverSQLite:
		return NewSQLiteStore(cfg.SQLitePath)
	case DriverPostgres:
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("postgres store needs a database url")
		}
		return NewPostgresStore(ctx, cfg.DBURL)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// GetJSON reads key and decodes it into T. A missing key returns ErrNotFound
// and a malformed value ErrDecode, both with the zero T.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, error) {
	var v T
	b, err := s.Get(ctx, key)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(b, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s: %v", ErrDecode, key, err)
	}
	return v, nil
}

// SetJSON encodes v and writes it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, b)
}
