package academic

import (
	"context"
	"sort"
	"sync"
)

type memoryStore struct {
	mu    sync.RWMutex
	books map[string]Gradebook
}

// NewInMemoryStore returns a Repository backed by a process-local map.
// Used by tests and by single-user offline deployments.
func NewInMemoryStore() Repository {
	return &memoryStore{books: map[string]Gradebook{}}
}

func (m *memoryStore) Get(_ context.Context, id string) (Gradebook, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.books[id]
	if !ok {
		return Gradebook{}, ErrNotFound
	}
	return g.Clone(), nil
}

func (m *memoryStore) List(_ context.Context, f Filter) ([]Gradebook, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Gradebook, 0)
	for _, g := range m.books {
		if f.matches(g) {
			out = append(out, g.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (m *memoryStore) Put(_ context.Context, gb Gradebook) (Gradebook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := gb.ID()
	existing, ok := m.books[id]
	if !ok {
		gb.Version = 1
		m.books[id] = gb.Clone()
		return gb, nil
	}
	if existing.Version != gb.Version {
		return Gradebook{}, ErrVersionConflict
	}
	// Only the unlock transition may overwrite a locked record.
	if existing.Locked && gb.Locked {
		return Gradebook{}, ErrLocked
	}
	gb.Version = existing.Version + 1
	m.books[id] = gb.Clone()
	return gb, nil
}
