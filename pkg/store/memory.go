package store

import (
	"context"
	"sort"
	"sync"
)

// memory is a non-durable [Store] for dev mode and tests.
type memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemory initializes an in-memory [Store]. It provides the same
// semantics as the persistent backends, but data doesn't survive
// process restarts, so it's meant only for dev mode and tests.
func NewMemory() Store {
	return &memory{entries: map[string]Entry{}}
}

func (m *memory) Get(_ context.Context, acronym string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[Normalize(acronym)]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (m *memory) Put(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.Acronym = Normalize(e.Acronym)
	m.entries[e.Acronym] = e
	return nil
}

func (m *memory) Delete(_ context.Context, acronym string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := Normalize(acronym)
	if _, ok := m.entries[key]; !ok {
		return ErrNotFound
	}
	delete(m.entries, key)
	return nil
}

func (m *memory) List(_ context.Context) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Acronym < entries[j].Acronym
	})
	return entries, nil
}

func (m *memory) Close() error {
	return nil
}
