package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetOrCreate(t *testing.T) {
	calls := 0
	s := New(func(userID int64) int {
		calls++
		return int(userID) * 10
	})

	v := s.GetOrCreate(7)
	assert.Equal(t, 70, v)
	assert.Equal(t, 1, calls)

	// Second access must not re-run the constructor.
	v = s.GetOrCreate(7)
	assert.Equal(t, 70, v)
	assert.Equal(t, 1, calls)
}

func TestStorePeekDoesNotCreate(t *testing.T) {
	s := New(func(int64) string { return "default" })

	_, ok := s.Peek(1)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())

	s.GetOrCreate(1)
	v, ok := s.Peek(1)
	require.True(t, ok)
	assert.Equal(t, "default", v)
}

func TestStorePutOverwrites(t *testing.T) {
	s := New(func(int64) string { return "default" })
	s.GetOrCreate(1)
	s.Put(1, "renamed")

	v, ok := s.Peek(1)
	require.True(t, ok)
	assert.Equal(t, "renamed", v)
}

func TestStoreConcurrentGetOrCreate(t *testing.T) {
	calls := 0
	var callMu sync.Mutex
	s := New(func(int64) int {
		callMu.Lock()
		calls++
		callMu.Unlock()
		return 1
	})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.GetOrCreate(42)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls, "constructor must run exactly once per user")
}

func TestKeyedMutexSerializes(t *testing.T) {
	km := NewKeyedMutex()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock(5)
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestKeyedMutexDistinctKeys(t *testing.T) {
	km := NewKeyedMutex()
	assert.NotSame(t, km.Get(1), km.Get(2))
	assert.Same(t, km.Get(1), km.Get(1))
}
