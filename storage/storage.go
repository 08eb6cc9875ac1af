// ABOUTME: Key/value persistence port for session state
// ABOUTME: Defines the Store interface and an in-memory implementation

package storage

import "sync"

// Store is the persistence boundary the session manager writes through.
// Implementations must tolerate Get/Delete on absent keys.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string)
}

// MemStore is a non-durable Store backed by a sync.Map.
// Useful for tests and for sessions that should not outlive the process.
type MemStore struct {
	store sync.Map
}

// NewMemStore creates an empty in-memory store
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) Get(key string) (string, bool) {
	val, ok := m.store.Load(key)
	if !ok {
		return "", false
	}
	return val.(string), true
}

func (m *MemStore) Set(key, value string) error {
	m.store.Store(key, value)
	return nil
}

func (m *MemStore) Delete(key string) {
	m.store.Delete(key)
}
