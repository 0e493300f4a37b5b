package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fishlog/internal/amqp"
	"fishlog/internal/services"
	"fishlog/internal/storage"
	"fishlog/internal/storage/memory"
)

// Result is a ready catch service plus whatever must be closed with it.
type Result struct {
	Store   storage.CatchStore
	Service *services.CatchService
	// Publisher is nil when catch events are disabled or the broker was unreachable.
	Publisher *amqp.Client
}

// Close releases the publisher and the store.
func (r *Result) Close() error {
	var errs []error
	if r.Publisher != nil {
		if err := r.Publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close amqp client: %w", err))
		}
	}
	if r.Service != nil {
		if err := r.Service.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// OpenStore opens the catch store named by config.Type.
func (f *Factory) OpenStore(config Config) (storage.CatchStore, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
		return repo, nil
	case MemoryBackend:
		f.logger.Info("Initialized memory backend")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

// CreateBackend opens the store and, when AMQP is configured, the event
// publisher. A broker that cannot be reached only disables events.
func (f *Factory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	store, err := f.OpenStore(config)
	if err != nil {
		return nil, err
	}

	var publisher *amqp.Client
	if config.AMQPURL != "" {
		publisher, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without catch events", "error", err)
			publisher = nil
		} else {
			f.logger.InfoContext(ctx, "Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	var events services.EventPublisher
	if publisher != nil {
		events = publisher
	}

	return &Result{
		Store:     store,
		Service:   services.NewCatchService(store, events),
		Publisher: publisher,
	}, nil
}
