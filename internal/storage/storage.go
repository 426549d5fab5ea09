// Package storage holds the key/value blob store the core persists JSON through.
package storage

//go:generate mockgen -source=storage.go -destination=mocks/mock_storage.go -package=mocks

// BlobStore persists opaque string blobs by key.
//
// Get reports ok=false when the key was never set or has been removed.
type BlobStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// MemoryStore is a BlobStore kept in process memory.
type MemoryStore struct {
	data map[string]string
}

var _ BlobStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Remove(key string) error {
	delete(m.data, key)
	return nil
}
