package sheets

import (
	"context"

	"fishlog/internal/core"
)

// Ports for outbound adapters.
type (
	// CatchMirror keeps an external copy of the catch log in step with the store.
	// Both operations are idempotent: appending a mirrored id or deleting a
	// missing one is a no-op.
	CatchMirror interface {
		AppendCatch(ctx context.Context, rec core.CatchRecord) error
		DeleteCatch(ctx context.Context, id int64) error
	}

	// MirroredIDLister reports which catch ids the mirror already holds.
	MirroredIDLister interface {
		MirroredIDs(ctx context.Context) ([]int64, error)
	}
)
