package backend

import (
	"context"
	"time"

	"argentvault/internal/amqp"
	"argentvault/internal/cache"
	"argentvault/internal/sheets"
	"argentvault/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult is everything the API server needs to persist state and
// announce budget changes.
type BackendResult struct {
	Store storage.Store
	// Cache is the read-through cache in front of Store, nil when disabled.
	Cache *cache.LRUCache[[]byte]
	// Publisher is nil when AMQP is not configured or unreachable.
	Publisher *amqp.Client
	// Ready pings the underlying database. Nil for backends with nothing
	// to ping.
	Ready   func(ctx context.Context) error
	Cleanup CleanupFunc
}

// ExporterResult is the sink used by the export worker.
type ExporterResult struct {
	Exporter sheets.SnapshotExporter
	Lister   sheets.SnapshotLister
	Kind     string
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
	CreateExporter(ctx context.Context, config Config) (*ExporterResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	SQLiteDBPath string
	BoltDBPath   string

	CacheSize int
	CacheTTL  time.Duration

	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string
}

// BackendType represents the type of backend
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
	BoltBackend   BackendType = "bolt"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend, BoltBackend:
		return true
	default:
		return false
	}
}
