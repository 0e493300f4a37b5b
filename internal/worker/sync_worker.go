package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fishlog/internal/amqp"
	"fishlog/internal/core"
	"fishlog/internal/sheets"
	"fishlog/internal/storage"
)

// SyncWorker mirrors catches from the store into a spreadsheet.
type SyncWorker struct {
	store  storage.CatchReader
	lister storage.CatchLister
	mirror sheets.CatchMirror
}

func NewSyncWorker(store storage.CatchStore, mirror sheets.CatchMirror) *SyncWorker {
	return &SyncWorker{
		store:  store,
		lister: store,
		mirror: mirror,
	}
}

// HandleEvent applies a single catch event from AMQP.
func (w *SyncWorker) HandleEvent(ctx context.Context, event *amqp.CatchEvent) error {
	slog.InfoContext(ctx, "Processing catch event", "type", event.Type, "id", event.ID)

	switch event.Type {
	case amqp.CatchCreated:
		return w.handleCreated(ctx, event.ID)
	case amqp.CatchDeleted:
		return w.handleDeleted(ctx, event.ID)
	default:
		return fmt.Errorf("unsupported event type %q", event.Type)
	}
}

func (w *SyncWorker) handleCreated(ctx context.Context, id int64) error {
	rec, err := w.store.Get(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		// Deleted before we got here; the delete event covers the mirror.
		slog.WarnContext(ctx, "Catch no longer in store, skipping", "id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get catch from storage: %w", err)
	}

	if err := w.mirror.AppendCatch(ctx, rec); err != nil {
		return fmt.Errorf("append catch to mirror: %w", err)
	}
	slog.InfoContext(ctx, "Catch mirrored",
		"id", rec.ID,
		"species", rec.Species,
		"catcher", rec.Catcher)
	return nil
}

func (w *SyncWorker) handleDeleted(ctx context.Context, id int64) error {
	if err := w.mirror.DeleteCatch(ctx, id); err != nil {
		return fmt.Errorf("delete catch from mirror: %w", err)
	}
	slog.InfoContext(ctx, "Catch removed from mirror", "id", id)
	return nil
}

// StartupSyncCheck reconciles the mirror with the store, covering events lost
// while the worker or broker was down. Mirrors that cannot list their ids only
// receive appends.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	records, err := w.lister.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list catches for startup check: %w", err)
	}

	mirrored := map[int64]bool{}
	lister, canList := w.mirror.(sheets.MirroredIDLister)
	if canList {
		ids, err := lister.MirroredIDs(ctx)
		if err != nil {
			return fmt.Errorf("list mirrored ids: %w", err)
		}
		for _, id := range ids {
			mirrored[id] = true
		}
	}

	var appended, removed, failed int
	inStore := make(map[int64]bool, len(records))
	for _, rec := range records {
		inStore[rec.ID] = true
		if mirrored[rec.ID] {
			continue
		}
		if err := w.mirror.AppendCatch(ctx, rec); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror catch during startup", "id", rec.ID, "error", err)
			failed++
			continue
		}
		appended++
	}

	for id := range mirrored {
		if inStore[id] {
			continue
		}
		if err := w.mirror.DeleteCatch(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to remove stale mirror row", "id", id, "error", err)
			failed++
			continue
		}
		removed++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(records),
		"appended", appended,
		"removed", removed,
		"errors", failed)

	if failed > 0 {
		return fmt.Errorf("startup sync: %d operations failed", failed)
	}
	return nil
}
