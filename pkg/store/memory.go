package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-process archive for tests and the standalone CLI.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore creates an empty in-memory archive.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

// Save persists an entry, assigning ID and CreatedAt when unset.
func (s *MemoryStore) Save(ctx context.Context, e *Entry) error {
	prepare(e)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.ID] = *e
	return nil
}

// Get retrieves an entry by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, notFound(id)
	}
	return &e, nil
}

// List returns entries newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Delete removes an entry.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return notFound(id)
	}
	delete(s.entries, id)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
