package backend

import (
	"context"

	"ledger/internal/services"
	"ledger/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the ledger service and the cleanup function that
// releases its connections.
type BackendResult struct {
	Service *services.LedgerService
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend connects the store and optional publisher described by config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Storage
	Driver storage.Driver
	DSN    string

	// EnsureSchema creates the transactions table on startup when set.
	EnsureSchema bool

	// AMQP (optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// StoreConfig returns the storage part of the configuration.
func (c Config) StoreConfig() storage.Config {
	return storage.Config{Driver: c.Driver, DSN: c.DSN}
}
