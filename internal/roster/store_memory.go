package roster

import (
	"context"
	"sort"
	"sync"
)

type memoryStore struct {
	mu     sync.RWMutex
	people map[string]Person
}

// NewInMemoryStore returns a Repository backed by a process-local map.
func NewInMemoryStore() Repository {
	return &memoryStore{people: map[string]Person{}}
}

func (m *memoryStore) Get(_ context.Context, id string) (Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.people[id]
	if !ok {
		return Person{}, ErrNotFound
	}
	return p, nil
}

func (m *memoryStore) Put(_ context.Context, p Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.people[p.ID] = p
	return nil
}

func (m *memoryStore) ListStudents(_ context.Context, f Filter) ([]Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Student, 0)
	for _, p := range m.people {
		s, ok := p.AsStudent()
		if !ok || !f.matches(s) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
