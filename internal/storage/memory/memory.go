package memory

import (
	"context"
	"fmt"
	"sync"

	"fishlog/internal/core"
	"fishlog/internal/storage"
)

// Store keeps catches in process memory. Contents are lost on restart.
type Store struct {
	mu     sync.Mutex
	lastID int64
	items  []core.CatchRecord
}

var _ storage.CatchStore = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// NewSeeded returns a store preloaded with the given catches.
func NewSeeded(seed []core.NewCatch) (*Store, error) {
	s := New()
	for i, c := range seed {
		if _, err := s.Create(context.Background(), c); err != nil {
			return nil, fmt.Errorf("seed catch %d: %w", i, err)
		}
	}
	return s, nil
}

// Create stores the catch under the next id. Ids are never handed out twice.
func (s *Store) Create(_ context.Context, c core.NewCatch) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	s.items = append(s.items, c.Record(s.lastID))
	return s.lastID, nil
}

func (s *Store) ListAll(_ context.Context) ([]core.CatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.CatchRecord, len(s.items))
	for i, rec := range s.items {
		out[i] = clone(rec)
	}
	return out, nil
}

func (s *Store) Get(_ context.Context, id int64) (core.CatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return clone(s.items[i]), nil
	}
	return core.CatchRecord{}, fmt.Errorf("get catch %d: %w", id, core.ErrNotFound)
}

func (s *Store) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("delete catch %d: %w", id, core.ErrNotFound)
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) indexOf(id int64) int {
	for i, rec := range s.items {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

func clone(rec core.CatchRecord) core.CatchRecord {
	if rec.Weight != nil {
		w := *rec.Weight
		rec.Weight = &w
	}
	return rec
}
