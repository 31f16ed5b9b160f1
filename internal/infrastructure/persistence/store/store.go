// Package store provides the keyed blob store backing all persisted state.
// Each key maps to one JSON-serializable blob, mirroring the client-local
// storage layout the system was designed around: machine_id, member_name,
// machines_database, users_database, messages_backup.
package store

import "sync"

// Store is the persistence boundary for keyed blobs. Implementations must be
// safe for concurrent use within one process. Writers in other processes are
// unguarded: last write wins, with no revision check. Accepted limitation.
type Store interface {
	// Get returns the blob for key and whether it was present.
	Get(key string) ([]byte, bool, error)
	// Set writes the blob for key, replacing any prior value.
	Set(key string, value []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
}

// MemoryStore is an in-memory Store for tests and ephemeral runs.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (m *MemoryStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.blobs[key] = stored
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.blobs, key)
	return nil
}
