// Package storage persists ledger transactions in a relational database.
//
// One table, transactions, holds every record. Postgres is the production
// backend; SQLite is supported for local use and for tests. Both share the
// same schema and SQL, with placeholders rebound per driver by sqlx.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	"ledger/internal/log"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// String implements fmt.Stringer
func (d Driver) String() string {
	return string(d)
}

// IsValid returns true if the driver is supported
func (d Driver) IsValid() bool {
	switch d {
	case DriverPostgres, DriverSQLite:
		return true
	default:
		return false
	}
}

// sqlDriver returns the database/sql driver name registered for d.
func (d Driver) sqlDriver() (string, error) {
	switch d {
	case DriverPostgres:
		return "pgx", nil
	case DriverSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported driver %q", string(d))
	}
}

// Config selects the backend. DSN is a postgres:// URL for postgres and a file
// path for sqlite.
type Config struct {
	Driver Driver
	DSN    string
}

// Store is a handle on the transactions table. It is meant for one logical
// caller at a time.
type Store struct {
	db     *sqlx.DB
	logger *log.Logger
	now    func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithLogger sets the logger used to report failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger.WithComponent(log.ComponentStorage)
		}
	}
}

// WithClock overrides the clock used to default transaction dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New wraps an already connected database handle.
func New(db *sqlx.DB, opts ...Option) *Store {
	s := &Store{
		db:     db,
		logger: log.Default(log.ComponentStorage),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open connects to the configured backend and verifies the connection with a
// ping. It does not retry. On failure the cause is logged and returned
// wrapped in ErrConnection.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := New(nil, opts...)

	driverName, err := cfg.Driver.sqlDriver()
	if err != nil {
		s.logFailure(ctx, log.OpConnect, log.ErrorTypeConfiguration, err, log.FieldDriver, cfg.Driver.String())
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	if cfg.Driver == DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DSN), 0755); err != nil {
			s.logFailure(ctx, log.OpConnect, log.ErrorTypeConfiguration, err, log.FieldDriver, cfg.Driver.String())
			return nil, fmt.Errorf("%w: create db directory: %w", ErrConnection, err)
		}
	}

	db, err := sqlx.ConnectContext(ctx, driverName, cfg.DSN)
	if err != nil {
		s.logFailure(ctx, log.OpConnect, log.ErrorTypeNetwork, err, log.FieldDriver, cfg.Driver.String())
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	if cfg.Driver == DriverSQLite {
		// SQLite allows a single writer; serialize through one connection.
		db.SetMaxOpenConns(1)
	}

	s.db = db
	s.logger.DebugContext(ctx, "Database connection established", log.FieldDriver, cfg.Driver.String())
	return s, nil
}

// DB exposes the underlying handle for callers that need custom queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// withTx runs fn inside a transaction. If fn returns an error, the
// transaction is rolled back. Otherwise, it is committed.
func (s *Store) withTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) logFailure(ctx context.Context, op, errorType string, err error, extra ...any) {
	fields := log.NewFields().
		WithOperation(op).
		WithErrorType(errorType).
		WithError(err)
	s.logger.ErrorContext(ctx, "Ledger store operation failed", append(fields.ToSlice(), extra...)...)
}
