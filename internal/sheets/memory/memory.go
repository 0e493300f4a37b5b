package memory

import (
	"context"
	"sort"
	"sync"

	"fishlog/internal/core"
	ports "fishlog/internal/sheets"
)

var (
	_ ports.CatchMirror      = (*Mirror)(nil)
	_ ports.MirroredIDLister = (*Mirror)(nil)
)

// Mirror is an in-process CatchMirror used when no spreadsheet is configured.
type Mirror struct {
	mu   sync.Mutex
	rows map[int64]core.CatchRecord
}

func New() *Mirror {
	return &Mirror{rows: make(map[int64]core.CatchRecord)}
}

func (m *Mirror) AppendCatch(_ context.Context, rec core.CatchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[rec.ID]; !ok {
		m.rows[rec.ID] = rec
	}
	return nil
}

func (m *Mirror) DeleteCatch(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

// MirroredIDs returns ids in ascending order.
func (m *Mirror) MirroredIDs(_ context.Context) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int64, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Get returns the mirrored record for id.
func (m *Mirror) Get(id int64) (core.CatchRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.rows[id]
	return rec, ok
}
