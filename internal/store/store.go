// internal/store/store.go
package store

import "sync"

// Store maps a Telegram user id to a value of type V, creating a
// default lazily on first access. All state is process-lifetime only.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[int64]V
	newV    func(userID int64) V
}

// New constructs a Store whose defaults are produced by newV.
func New[V any](newV func(userID int64) V) *Store[V] {
	return &Store[V]{
		entries: make(map[int64]V),
		newV:    newV,
	}
}

// GetOrCreate returns the value for userID, installing a freshly
// constructed default if none exists yet.
func (s *Store[V]) GetOrCreate(userID int64) V {
	s.mu.RLock()
	v, ok := s.entries[userID]
	s.mu.RUnlock()
	if ok {
		return v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another goroutine may have installed the entry in the gap.
	if v, ok := s.entries[userID]; ok {
		return v
	}
	v = s.newV(userID)
	s.entries[userID] = v
	return v
}

// Peek returns the value for userID without creating one.
func (s *Store[V]) Peek(userID int64) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[userID]
	return v, ok
}

// Put overwrites the value for userID.
func (s *Store[V]) Put(userID int64, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userID] = v
}

// Len reports the number of users with an entry.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
