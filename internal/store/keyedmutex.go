// internal/store/keyedmutex.go
package store

import "sync"

// KeyedMutex provides per-user mutex locking so that read-modify-write
// sequences on one user's record (claim, attribution) cannot interleave.
type KeyedMutex struct {
	mu      sync.Mutex
	mutexes map[int64]*sync.Mutex
}

// NewKeyedMutex constructs an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{mutexes: make(map[int64]*sync.Mutex)}
}

// Get returns the mutex for userID, creating one if needed.
func (km *KeyedMutex) Get(userID int64) *sync.Mutex {
	km.mu.Lock()
	defer km.mu.Unlock()
	m, ok := km.mutexes[userID]
	if !ok {
		m = &sync.Mutex{}
		km.mutexes[userID] = m
	}
	return m
}

// Lock locks the mutex for userID and returns an unlock func.
func (km *KeyedMutex) Lock(userID int64) func() {
	m := km.Get(userID)
	m.Lock()
	return m.Unlock
}
