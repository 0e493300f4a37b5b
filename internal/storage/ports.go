package storage

import (
	"context"

	"fishlog/internal/core"
)

// Ports implemented by every catch store backend.
type (
	CatchWriter interface {
		Create(ctx context.Context, c core.NewCatch) (id int64, err error)
	}

	// CatchLister returns every stored catch ordered by ascending id.
	CatchLister interface {
		ListAll(ctx context.Context) ([]core.CatchRecord, error)
	}

	// CatchDeleter removes a catch; core.ErrNotFound when the id is unknown.
	CatchDeleter interface {
		DeleteByID(ctx context.Context, id int64) error
	}

	CatchReader interface {
		Get(ctx context.Context, id int64) (core.CatchRecord, error)
	}

	CatchStore interface {
		CatchWriter
		CatchLister
		CatchDeleter
		CatchReader
		Ping(ctx context.Context) error
		Close() error
	}
)
