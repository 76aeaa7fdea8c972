package store

import (
	"context"
	"sync"
)

// FetchFunc loads every row of one remote table, newest first.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Store is an in-memory snapshot cache of one entity table. Refresh replaces
// the whole snapshot; there is no merging or diffing. A failed refresh keeps
// the previous snapshot available and records the error. Concurrent
// refreshes are last-write-wins.
type Store[T any] struct {
	mu      sync.RWMutex
	fetch   FetchFunc[T]
	items   []T
	loading bool
	err     error
}

func New[T any](fetch FetchFunc[T]) *Store[T] {
	return &Store[T]{
		fetch: fetch,
	}
}

// Refresh fetches the authoritative rows and swaps them in wholesale. On
// error the stale snapshot is retained.
func (s *Store[T]) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	items, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false

	if err != nil {
		s.err = err
		return err
	}

	s.items = items
	s.err = nil

	return nil
}

// Items returns a copy of the current snapshot.
func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]T, len(s.items))
	copy(items, s.items)

	return items
}

// Err reports the error of the last failed refresh, cleared by the next
// successful one.
func (s *Store[T]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.err
}

func (s *Store[T]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loading
}
