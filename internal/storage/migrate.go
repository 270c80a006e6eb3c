package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"ledger/internal/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// createTransactionsTableSQL is also what EnsureSchema runs, so both paths
// produce the same table.
//
//go:embed migrations/000001_create_transactions_table.up.sql
var createTransactionsTableSQL string

type Direction string

const (
	MigrateUp   Direction = "up"
	MigrateDown Direction = "down"
)

// RunMigrations applies (up) or reverts (down) every embedded migration.
// Running up on a migrated database is a no-op.
func RunMigrations(cfg Config, dir Direction) error {
	driverName, err := cfg.Driver.sqlDriver()
	if err != nil {
		return err
	}

	// Create a separate connection for migrations to avoid interfering with the main connection
	migrateDB, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	var driver database.Driver
	switch cfg.Driver {
	case DriverPostgres:
		driver, err = migratepgx.WithInstance(migrateDB, &migratepgx.Config{})
	case DriverSQLite:
		driver, err = migratesqlite.WithInstance(migrateDB, &migratesqlite.Config{})
	}
	if err != nil {
		return fmt.Errorf("create %s driver: %w", cfg.Driver, err)
	}

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, cfg.Driver.String(), driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	switch dir {
	case MigrateUp:
		err = m.Up()
	case MigrateDown:
		err = m.Down()
	default:
		return fmt.Errorf("unknown migration direction %q", string(dir))
	}
	logger := log.Default(log.ComponentMigrate)
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No migrations to apply", log.FieldOperation, log.OpMigrate, "direction", string(dir))
		return nil
	}
	if err != nil {
		logger.Error("Migration failed", log.NewFields().
			WithOperation(log.OpMigrate).
			WithErrorType(log.ErrorTypeDatabase).
			WithError(err).
			With(log.FieldDriver, cfg.Driver.String()).
			ToSlice()...)
		return fmt.Errorf("run migrations %s: %w", dir, err)
	}

	logger.Info("Migrations applied", log.FieldOperation, log.OpMigrate, "direction", string(dir))
	return nil
}
