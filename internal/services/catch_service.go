package services

import (
	"context"
	"fmt"
	"log/slog"

	"fishlog/internal/core"
	"fishlog/internal/storage"
)

// EventPublisher announces catch changes to downstream consumers.
type EventPublisher interface {
	PublishCatchCreated(ctx context.Context, id int64) error
	PublishCatchDeleted(ctx context.Context, id int64) error
}

// CatchService orchestrates catch operations across the store and the event bus.
type CatchService struct {
	store     storage.CatchStore
	publisher EventPublisher
}

// NewCatchService wires the service. publisher may be nil when messaging is disabled.
func NewCatchService(store storage.CatchStore, publisher EventPublisher) *CatchService {
	return &CatchService{
		store:     store,
		publisher: publisher,
	}
}

// CreateCatch validates and stores the catch, then publishes catch.created.
func (s *CatchService) CreateCatch(ctx context.Context, c core.NewCatch) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	id, err := s.store.Create(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("save catch: %w", err)
	}

	if s.publisher == nil {
		slog.DebugContext(ctx, "Event publisher not configured, skipping catch.created", "id", id)
		return id, nil
	}
	if err := s.publisher.PublishCatchCreated(ctx, id); err != nil {
		// The catch is stored; mirrors catch up through the worker backfill
		slog.ErrorContext(ctx, "Failed to publish catch.created", "id", id, "error", err)
	}
	return id, nil
}

// DeleteCatch removes the catch, then publishes catch.deleted.
func (s *CatchService) DeleteCatch(ctx context.Context, id int64) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}

	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.PublishCatchDeleted(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish catch.deleted", "id", id, "error", err)
	}
	return nil
}

func (s *CatchService) ListCatches(ctx context.Context) ([]core.CatchRecord, error) {
	return s.store.ListAll(ctx)
}

// Overview lists every catch and derives the chart series from that snapshot.
func (s *CatchService) Overview(ctx context.Context) ([]core.CatchRecord, core.CatchOverview, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, core.CatchOverview{}, err
	}
	return records, core.BuildOverview(records), nil
}

// Leaderboard ranks catchers by number of catches.
func (s *CatchService) Leaderboard(ctx context.Context) ([]core.CategoryCount, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := core.CountBy(records, core.ByCatcher)
	if err != nil {
		return nil, err
	}
	return core.SortByCount(counts), nil
}

// Ping checks the store is reachable.
func (s *CatchService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Close closes the store.
func (s *CatchService) Close() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("close catch service: %w", err)
	}
	return nil
}
