// Package repositorytest provides an in-memory summary store for tests.
package repositorytest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/deppfellow/url-summarizer/internal/model"
)

// MemoryStore keeps summaries in a map. Ids start at 1 and are never reused.
// Set Err to make every call fail with it.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]model.Summary
	now    func() time.Time

	Err error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		rows:   make(map[int64]model.Summary),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryStore) Insert(_ context.Context, url, summary string) (*model.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	s := model.Summary{
		ID:        m.nextID,
		URL:       url,
		Summary:   summary,
		CreatedAt: m.now(),
	}
	m.rows[s.ID] = s
	m.nextID++

	return &s, nil
}

func (m *MemoryStore) FindByID(_ context.Context, id int64) (*model.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	s, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MemoryStore) FindAll(_ context.Context) ([]model.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	out := make([]model.Summary, 0, len(m.rows))
	for _, s := range m.rows {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (m *MemoryStore) UpdateByID(_ context.Context, id int64, url, summary string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return 0, m.Err
	}

	s, ok := m.rows[id]
	if !ok {
		return 0, nil
	}
	s.URL = url
	s.Summary = summary
	m.rows[id] = s

	return 1, nil
}

func (m *MemoryStore) DeleteByID(_ context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return 0, m.Err
	}

	if _, ok := m.rows[id]; !ok {
		return 0, nil
	}
	delete(m.rows, id)

	return 1, nil
}

// Len reports the number of stored records.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
