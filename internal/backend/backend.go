// Package backend selects and builds the key-value store the ledger
// persists into, based on application configuration.
package backend

import (
	"fmt"
	"log/slog"

	"github.com/madhuerpdirect-droid/gts-chits/internal/config"
	"github.com/madhuerpdirect-droid/gts-chits/internal/keyval"
	"github.com/madhuerpdirect-droid/gts-chits/internal/keyval/memory"
	"github.com/madhuerpdirect-droid/gts-chits/internal/storage"
)

// Type represents the kind of backing store.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the store instance and optional cleanup function
type Result struct {
	Store   keyval.KV
	Cleanup CleanupFunc
}

// Factory creates key-value stores based on configuration
type Factory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Create builds the key-value store named by cfg.DataBackend.
func (f *Factory) Create(cfg *config.Config) (*Result, error) {
	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	switch t {
	case SQLiteBackend:
		return f.createSQLite(cfg)
	case MemoryBackend:
		return f.createMemory()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", t)
	}
}

func (f *Factory) createSQLite(cfg *config.Config) (*Result, error) {
	kv, err := storage.NewSQLiteKV(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)

	return &Result{
		Store:   kv,
		Cleanup: kv.Close,
	}, nil
}

func (f *Factory) createMemory() (*Result, error) {
	store := memory.New()

	f.logger.Info("Initialized memory backend")

	return &Result{
		Store:   store,
		Cleanup: nil,
	}, nil
}
