package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"ledger/internal/core"
	"ledger/internal/log"
)

const (
	insertTransactionSQL = `
		INSERT INTO transactions (transaction_id, transaction_date, description, amount, type)
		VALUES (:transaction_id, :transaction_date, :description, :amount, :type)`

	selectTransactionsSQL = `
		SELECT transaction_id, transaction_date, description, amount, type
		FROM transactions`

	aggregatesSQL = `
		SELECT
			COUNT(*) AS total_transactions,
			COALESCE(SUM(CASE WHEN type = 'Revenue' THEN amount ELSE 0 END), 0) AS total_revenue,
			COALESCE(SUM(CASE WHEN type = 'Expense' THEN amount ELSE 0 END), 0) AS total_expenses
		FROM transactions`
)

// transactionRow mirrors the transactions table column for column.
type transactionRow struct {
	ID          string          `db:"transaction_id"`
	Date        core.Date       `db:"transaction_date"`
	Description sql.NullString  `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	Type        string          `db:"type"`
}

func toRow(t core.Transaction) transactionRow {
	return transactionRow{
		ID:          t.ID,
		Date:        t.Date,
		Description: sql.NullString{String: t.Description, Valid: t.Description != ""},
		Amount:      t.Amount,
		Type:        string(t.Type),
	}
}

func (r transactionRow) toTransaction() core.Transaction {
	return core.Transaction{
		ID:          r.ID,
		Date:        r.Date,
		Description: r.Description.String,
		Amount:      r.Amount,
		Type:        core.TransactionType(r.Type),
	}
}

type summaryRow struct {
	TotalTransactions int64           `db:"total_transactions"`
	TotalRevenue      decimal.Decimal `db:"total_revenue"`
	TotalExpenses     decimal.Decimal `db:"total_expenses"`
}

// EnsureSchema creates the transactions table if it does not exist. It runs in
// its own transaction and leaves an existing table untouched.
func (s *Store) EnsureSchema(ctx context.Context) error {
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, createTransactionsTableSQL)
		return err
	})
	if err != nil {
		s.logFailure(ctx, log.OpSchema, log.ErrorTypeDatabase, err)
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}

	s.logger.DebugContext(ctx, "Transactions table ensured")
	return nil
}

// Insert stores a new transaction with a freshly generated id. A zero date is
// replaced by today's local date. The row is written in its own transaction,
// so a failure leaves nothing behind.
func (s *Store) Insert(ctx context.Context, in core.NewTransaction) (core.Transaction, error) {
	if err := in.Validate(); err != nil {
		s.logFailure(ctx, log.OpInsert, log.ErrorTypeValidation, err)
		return core.Transaction{}, fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	}

	date := in.Date
	if date.IsEmpty() {
		date = core.DateOf(s.now())
	}

	t := core.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
	}

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, insertTransactionSQL, toRow(t))
		return err
	})
	if err != nil {
		if isConstraintViolation(err) {
			s.logFailure(ctx, log.OpInsert, log.ErrorTypeConstraint, err, log.FieldTransactionType, t.Type.String())
			return core.Transaction{}, fmt.Errorf("%w: %w", ErrConstraintViolation, err)
		}
		s.logFailure(ctx, log.OpInsert, log.ErrorTypeDatabase, err)
		return core.Transaction{}, fmt.Errorf("%w: %w", ErrInsert, err)
	}

	s.logger.InfoContext(ctx, "Transaction saved",
		log.NewFields().
			WithOperation(log.OpInsert).
			WithTransaction(t.ID, t.Type.String(), t.Date.String(), core.FormatAmount(t.Amount)).
			ToSlice()...)

	return t, nil
}

// Query returns the transactions matching opts. The result is never nil: on
// failure the error is logged and returned alongside an empty slice.
func (s *Store) Query(ctx context.Context, opts core.QueryOptions) ([]core.Transaction, error) {
	result := []core.Transaction{}

	norm, err := opts.Normalize()
	if err != nil {
		s.logFailure(ctx, log.OpQuery, log.ErrorTypeValidation, err, log.FieldSortBy, opts.SortBy, log.FieldSortOrder, opts.SortOrder)
		return result, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	query, args := buildSelect(norm)

	var rows []transactionRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		s.logFailure(ctx, log.OpQuery, log.ErrorTypeDatabase, err)
		return result, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	for _, r := range rows {
		result = append(result, r.toTransaction())
	}

	s.logger.DebugContext(ctx, "Transactions queried",
		log.NewFields().
			WithOperation(log.OpQuery).
			WithQuery(norm.FilterType, norm.SortBy, norm.SortOrder).
			With(log.FieldRowCount, len(result)).
			ToSlice()...)

	return result, nil
}

// buildSelect expects normalized options: SortBy and SortOrder are already
// allow-listed, FilterType is bound as a parameter.
func buildSelect(opts core.QueryOptions) (string, []any) {
	var b strings.Builder
	var args []any

	b.WriteString(selectTransactionsSQL)
	if opts.FilterType != "" {
		b.WriteString("\n\t\tWHERE type = ?")
		args = append(args, opts.FilterType)
	}
	if opts.SortBy != "" {
		fmt.Fprintf(&b, "\n\t\tORDER BY %s %s", quoteIdent(opts.SortBy), opts.SortOrder)
	}
	return b.String(), args
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Aggregates computes the row count and revenue/expense sums in one pass.
// An empty table yields a zero Summary. On failure the zero Summary is
// returned along with an error wrapping ErrAggregate.
func (s *Store) Aggregates(ctx context.Context) (core.Summary, error) {
	var row summaryRow
	if err := s.db.GetContext(ctx, &row, aggregatesSQL); err != nil {
		s.logFailure(ctx, log.OpAggregate, log.ErrorTypeDatabase, err)
		return core.Summary{}, fmt.Errorf("%w: %w", ErrAggregate, err)
	}

	return core.NewSummary(row.TotalTransactions, row.TotalRevenue, row.TotalExpenses), nil
}
