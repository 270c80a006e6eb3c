package backend

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"ledger/internal/amqp"
	"ledger/internal/log"
	"ledger/internal/services"
	"ledger/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Default(log.ComponentBackend)
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend. The database and the
// optional AMQP broker are dialled concurrently; only the database is
// required.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		store      *storage.Store
		amqpClient *amqp.Client
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s, err := storage.Open(gctx, config.StoreConfig(), storage.WithLogger(f.logger))
		if err != nil {
			return fmt.Errorf("failed to initialize %s store: %w", config.Driver, err)
		}
		if config.EnsureSchema {
			if err := s.EnsureSchema(gctx); err != nil {
				if cerr := s.Close(); cerr != nil {
					f.logger.WarnContext(ctx, "Failed to close store after schema error", log.FieldError, cerr)
				}
				return fmt.Errorf("failed to ensure schema: %w", err)
			}
		}
		store = s
		return nil
	})

	// Initialize AMQP client (optional)
	if config.AMQPURL != "" {
		g.Go(func() error {
			client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
			if err != nil {
				f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without events", log.FieldError, err)
				return nil
			}
			amqpClient = client
			f.logger.InfoContext(ctx, "Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if amqpClient != nil {
			amqpClient.Close()
		}
		return nil, err
	}

	// Keep the interface nil when there is no client.
	var publisher services.EventPublisher
	if amqpClient != nil {
		publisher = amqpClient
	}

	service := services.NewLedgerService(store, publisher)

	f.logger.InfoContext(ctx, "Initialized ledger backend",
		log.FieldDriver, config.Driver.String(),
		"amqp_enabled", publisher != nil)

	return &BackendResult{
		Service: service,
		Cleanup: service.Close,
	}, nil
}
