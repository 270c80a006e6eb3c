package storage

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Every store error wraps exactly one of these; match them with errors.Is.
var (
	ErrConnection          = errors.New("ledger: connection failed")
	ErrSchema              = errors.New("ledger: schema setup failed")
	ErrConstraintViolation = errors.New("ledger: constraint violation")
	ErrInsert              = errors.New("ledger: insert failed")
	ErrQuery               = errors.New("ledger: query failed")
	ErrAggregate           = errors.New("ledger: aggregate failed")
)

// isConstraintViolation reports whether err is an integrity error raised by
// the backend (CHECK, NOT NULL, PRIMARY KEY).
func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// SQLSTATE class 23: integrity constraint violation.
		return strings.HasPrefix(pgErr.Code, "23")
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}

	return false
}
