package services

import (
	"context"
	"errors"
	"fmt"

	"ledger/internal/core"
	"ledger/internal/log"
)

// TransactionStore is the persistence side of the ledger.
type TransactionStore interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, in core.NewTransaction) (core.Transaction, error)
	Query(ctx context.Context, opts core.QueryOptions) ([]core.Transaction, error)
	Aggregates(ctx context.Context) (core.Summary, error)
	Close() error
}

// EventPublisher announces stored transactions to other systems.
type EventPublisher interface {
	PublishTransactionRecorded(ctx context.Context, t core.Transaction) error
	Close() error
}

// InsertResult is the success flag and message shown to a user after an
// insert attempt.
type InsertResult struct {
	OK          bool
	Message     string
	Transaction core.Transaction
}

// LedgerService orchestrates ledger operations across the store and the
// optional event publisher.
type LedgerService struct {
	store     TransactionStore
	publisher EventPublisher
}

// NewLedgerService accepts a nil publisher, in which case no events are sent.
func NewLedgerService(store TransactionStore, publisher EventPublisher) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisher,
	}
}

func (s *LedgerService) EnsureSchema(ctx context.Context) error {
	if s.store == nil {
		return errors.New("ledger service has no store")
	}
	return s.store.EnsureSchema(ctx)
}

// RecordTransaction saves a transaction and then publishes an event for it.
func (s *LedgerService) RecordTransaction(ctx context.Context, in core.NewTransaction) (InsertResult, error) {
	if s.store == nil {
		err := errors.New("ledger service has no store")
		return InsertResult{Message: "Error adding transaction: " + err.Error()}, err
	}

	// Save first; the event is best effort.
	t, err := s.store.Insert(ctx, in)
	if err != nil {
		return InsertResult{Message: "Error adding transaction: " + err.Error()}, fmt.Errorf("record transaction: %w", err)
	}

	if err := s.publishRecorded(ctx, t); err != nil {
		log.Default(log.ComponentLedger).ErrorContext(ctx, "Failed to publish transaction recorded message",
			log.NewFields().
				WithOperation(log.OpPublish).
				WithErrorType(log.ErrorTypeNetwork).
				WithError(err).
				With(log.FieldTransactionID, t.ID).
				ToSlice()...)
		// Don't fail the request - the transaction is stored
	}

	return InsertResult{
		OK:          true,
		Message:     "Transaction added successfully",
		Transaction: t,
	}, nil
}

// ListTransactions returns the stored transactions selected by opts. The
// slice is empty, never nil, when nothing matches or the query fails.
func (s *LedgerService) ListTransactions(ctx context.Context, opts core.QueryOptions) ([]core.Transaction, error) {
	if s.store == nil {
		return []core.Transaction{}, errors.New("ledger service has no store")
	}
	return s.store.Query(ctx, opts)
}

// Summarize returns the ledger totals and net income.
func (s *LedgerService) Summarize(ctx context.Context) (core.Summary, error) {
	if s.store == nil {
		return core.Summary{}, errors.New("ledger service has no store")
	}
	return s.store.Aggregates(ctx)
}

func (s *LedgerService) publishRecorded(ctx context.Context, t core.Transaction) error {
	if s.publisher == nil {
		log.Default(log.ComponentLedger).DebugContext(ctx, "AMQP client not available, skipping transaction recorded message")
		return nil
	}

	return s.publisher.PublishTransactionRecorded(ctx, t)
}

// Close closes both storage and AMQP connections
func (s *LedgerService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %w", errors.Join(errs...))
	}

	return nil
}
