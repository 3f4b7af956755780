package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"argentvault/internal/amqp"
	"argentvault/internal/cache"
	gsheet "argentvault/internal/sheets/google"
	"argentvault/internal/sheets/memory"
	"argentvault/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend opens the configured store, puts the cache in front of it
// and connects the optional AMQP publisher.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		base    storage.Store
		ready   func(ctx context.Context) error
		closers []func() error
	)
	switch config.Type {
	case SQLiteBackend:
		if err := ensureDir(config.SQLiteDBPath); err != nil {
			return nil, err
		}
		s, err := storage.NewSQLiteStore(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
		base, ready = s, s.Ping
		closers = append(closers, s.Close)
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
	case BoltBackend:
		if err := ensureDir(config.BoltDBPath); err != nil {
			return nil, err
		}
		s, err := storage.NewBoltStore(config.BoltDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize bolt store: %w", err)
		}
		base = s
		closers = append(closers, s.Close)
		f.logger.Info("Initialized bolt backend", "db_path", config.BoltDBPath)
	case MemoryBackend:
		base = storage.NewMemoryStore()
		f.logger.Info("Initialized memory backend")
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}

	result := &BackendResult{Store: base, Ready: ready}
	// Caching a memory store buys nothing.
	if config.CacheSize > 0 && config.Type != MemoryBackend {
		result.Cache = cache.NewLRUCache[[]byte](config.CacheSize, config.CacheTTL)
		result.Store = storage.NewCachedStore(base, result.Cache)
		f.logger.Info("Enabled storage cache", "size", config.CacheSize, "ttl", config.CacheTTL)
	}

	if config.AMQPURL != "" {
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without budget events", "error", err)
		} else {
			result.Publisher = client
			closers = append(closers, client.Close)
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	result.Cleanup = func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
	return result, nil
}

// CreateExporter returns the Google Sheets exporter when a spreadsheet is
// configured and the in-memory one otherwise.
func (f *DefaultFactory) CreateExporter(ctx context.Context, config Config) (*ExporterResult, error) {
	if config.GoogleSpreadsheetID == "" {
		f.logger.Info("No spreadsheet configured, exporting to memory")
		m := memory.New()
		return &ExporterResult{Exporter: m, Lister: m, Kind: "memory"}, nil
	}

	cli, err := gsheet.New(ctx, gsheet.Options{
		SpreadsheetID:      config.GoogleSpreadsheetID,
		SheetName:          config.GoogleSheetName,
		ServiceAccountFile: config.GoogleServiceAccountFile,
		ServiceAccountJSON: config.GoogleServiceAccountJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}
	f.logger.Info("Initialized Google Sheets exporter", "sheet", config.GoogleSheetName)
	return &ExporterResult{Exporter: cli, Lister: cli, Kind: "sheets"}, nil
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory %s: %w", dir, err)
	}
	return nil
}
