package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fishlog/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the durable catch store backed by a single SQLite file.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

var _ CatchStore = (*SQLiteRepository)(nil)

// dsn enables WAL and a lock wait so concurrent requests queue instead of failing.
func dsn(dbPath string) string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", filepath.Clean(dbPath))
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// SQLite has a single writer; one connection keeps id assignment serialized.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dsn(dbPath)); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database file is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

// Create implements CatchWriter.
func (r *SQLiteRepository) Create(ctx context.Context, c core.NewCatch) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	id, err := r.queries.CreateCatch(ctx, CreateCatchParams{
		Species:     c.Species,
		Weight:      nullFloat(c.Weight),
		Bait:        c.Bait,
		Location:    c.Location,
		DateOfCatch: c.DateOfCatch,
		TimeOfCatch: c.TimeOfCatch,
		Catcher:     c.Catcher,
		ImageRef:    nullString(c.ImageRef),
	})
	if err != nil {
		return 0, unavailable("insert catch", err)
	}

	slog.InfoContext(ctx, "Catch saved to SQLite",
		"id", id,
		"species", c.Species,
		"catcher", c.Catcher)

	return id, nil
}

// ListAll implements CatchLister.
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]core.CatchRecord, error) {
	rows, err := r.queries.ListCatches(ctx)
	if err != nil {
		return nil, unavailable("list catches", err)
	}

	records := make([]core.CatchRecord, len(rows))
	for i, row := range rows {
		records[i] = toRecord(row)
	}
	return records, nil
}

// Get implements CatchReader.
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (core.CatchRecord, error) {
	row, err := r.queries.GetCatch(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.CatchRecord{}, fmt.Errorf("get catch %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.CatchRecord{}, unavailable(fmt.Sprintf("get catch %d", id), err)
	}
	return toRecord(row), nil
}

// DeleteByID implements CatchDeleter.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteCatch(ctx, id)
	if err != nil {
		return unavailable(fmt.Sprintf("delete catch %d", id), err)
	}
	if n == 0 {
		return fmt.Errorf("delete catch %d: %w", id, core.ErrNotFound)
	}

	slog.InfoContext(ctx, "Catch deleted from SQLite", "id", id)
	return nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, core.ErrStoreUnavailable, err)
}

func toRecord(row Fishcaught) core.CatchRecord {
	rec := core.CatchRecord{
		ID:          row.ID,
		Species:     row.Species,
		Bait:        row.Bait,
		Location:    row.Location,
		DateOfCatch: row.DateOfCatch,
		TimeOfCatch: row.TimeOfCatch,
		Catcher:     row.Catcher,
		ImageRef:    row.ImageRef.String,
	}
	if row.Weight.Valid {
		w := row.Weight.Float64
		rec.Weight = &w
	}
	return rec
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
