package repository

import (
	"context"
	"sync"

	"github.com/iliyamo/entry-exit-logbook/internal/model"
)

// MemoryStore is an in-process Store used by tests.  SaveErr and NextIDErr
// inject write failures; LoadErr makes Load report LoadCorrupt.
type MemoryStore struct {
	mu      sync.Mutex
	entries []model.Entry
	saved   bool
	lastID  int64

	SaveErr   error
	NextIDErr error
	LoadErr   error
}

// NewMemoryStore returns a store seeded with entries.  Seeding counts as a
// prior save, and the counter starts past the highest seeded id.
func NewMemoryStore(seed ...model.Entry) *MemoryStore {
	m := &MemoryStore{}
	if len(seed) > 0 {
		m.entries = append([]model.Entry(nil), seed...)
		m.saved = true
		for _, e := range seed {
			if e.ID > m.lastID {
				m.lastID = e.ID
			}
		}
	}
	return m
}

func (m *MemoryStore) Load(_ context.Context) LoadResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return corrupt(m.LoadErr)
	}
	if !m.saved {
		return missing()
	}
	return loaded(append([]model.Entry{}, m.entries...))
}

func (m *MemoryStore) Save(_ context.Context, entries []model.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.entries = append([]model.Entry{}, entries...)
	m.saved = true
	return nil
}

func (m *MemoryStore) NextID(_ context.Context, floor int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.NextIDErr != nil {
		return 0, m.NextIDErr
	}
	m.lastID = max(m.lastID, floor) + 1
	return m.lastID, nil
}
