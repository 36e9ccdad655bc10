// Package backend selects and constructs the persistence provider the store
// runs on.
package backend

import (
	"fmt"
	"log/slog"

	"tracker/internal/config"
	"tracker/internal/persist"
	"tracker/internal/persist/file"
	"tracker/internal/persist/memory"
	"tracker/internal/storage"
)

// Type identifies a persistence backend.
type Type string

const (
	Memory Type = "memory"
	File   Type = "file"
	SQLite Type = "sqlite"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	switch t {
	case Memory, File, SQLite:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Result carries the provider plus its optional cleanup.
type Result struct {
	Provider persist.Provider
	Cleanup  CleanupFunc
}

// Options holds what each backend needs.
type Options struct {
	Type Type

	// File backend
	DataDir string

	// SQLite backend
	SQLiteDBPath string

	// Memory backend
	SeedSampleData bool
}

// FromAppConfig converts the application config to backend options.
func FromAppConfig(cfg *config.Config) (Options, error) {
	if cfg == nil {
		return Options{}, fmt.Errorf("app config is nil")
	}
	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return Options{}, fmt.Errorf("invalid backend type in config: %s", cfg.DataBackend)
	}
	return Options{
		Type:           t,
		DataDir:        cfg.DataDir,
		SQLiteDBPath:   cfg.SQLiteDBPath,
		SeedSampleData: cfg.SeedSampleData,
	}, nil
}

// New creates the provider selected by the options.
func New(opts Options, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch opts.Type {
	case Memory:
		var store persist.Provider
		if opts.SeedSampleData {
			store = memory.NewSeeded()
		} else {
			store = memory.New()
		}
		logger.Info("Initialized memory backend", "seeded", opts.SeedSampleData)
		return &Result{Provider: store}, nil

	case File:
		provider, err := file.New(opts.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initialize file backend: %w", err)
		}
		logger.Info("Initialized file backend", "data_dir", opts.DataDir)
		return &Result{Provider: provider}, nil

	case SQLite:
		repo, err := storage.NewSQLiteRepository(opts.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized sqlite backend", "db_path", opts.SQLiteDBPath)
		return &Result{Provider: repo, Cleanup: repo.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", opts.Type)
	}
}
