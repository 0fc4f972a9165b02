// Package memory holds an in-process SessionStore, used by tests and by the
// "memory" store backend.
package memory

import (
	"context"
	"sync"

	"alcyxob/vitality-planner/internal/repository"
)

// Store keeps slot values in a map.
type Store struct {
	mu     sync.RWMutex
	values map[repository.Slot][]byte
	writes int
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{values: make(map[repository.Slot][]byte)}
}

func (s *Store) Get(_ context.Context, slot repository.Slot) ([]byte, error) {
	if !slot.Valid() {
		return nil, repository.ErrUnknownSlot
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[slot]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *Store) Set(_ context.Context, slot repository.Slot, value []byte) error {
	if !slot.Valid() {
		return repository.ErrUnknownSlot
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[slot] = append([]byte(nil), value...)
	s.writes++
	return nil
}

func (s *Store) Clear(_ context.Context, slot repository.Slot) error {
	if !slot.Valid() {
		return repository.ErrUnknownSlot
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, slot)
	return nil
}

// Has reports whether slot currently holds a value.
func (s *Store) Has(slot repository.Slot) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[slot]
	return ok
}

// Writes counts Set calls since creation.
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
