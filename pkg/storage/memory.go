package storage

import (
	"fmt"
	"slices"
	"sync"
)

// MemoryBackend implements Backend using in-memory maps (not persistent)
type MemoryBackend struct {
	buckets map[string]map[string][]byte
	mu      sync.RWMutex
}

// NewMemoryBackend creates a new in-memory storage backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		buckets: make(map[string]map[string][]byte),
	}
}

func (m *MemoryBackend) CreateBucket(name []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.buckets[string(name)]; !exists {
		m.buckets[string(name)] = make(map[string][]byte)
	}

	return nil
}

func (m *MemoryBackend) Put(bucket, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bkt, exists := m.buckets[string(bucket)]
	if !exists {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}

	bkt[string(key)] = slices.Clone(value)

	return nil
}

func (m *MemoryBackend) Get(bucket, key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bkt, exists := m.buckets[string(bucket)]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}

	value, exists := bkt[string(key)]
	if !exists {
		return nil, nil
	}

	return slices.Clone(value), nil
}

func (m *MemoryBackend) Delete(bucket, key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bkt, exists := m.buckets[string(bucket)]
	if !exists {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}

	delete(bkt, string(key))

	return nil
}

// ForEach visits keys in sorted order to match bbolt.
func (m *MemoryBackend) ForEach(bucket []byte, fn func(k, v []byte) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bkt, exists := m.buckets[string(bucket)]
	if !exists {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}

	keys := make([]string, 0, len(bkt))
	for k := range bkt {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if err := fn([]byte(k), bkt[k]); err != nil {
			return err
		}
	}

	return nil
}

// Close is a no-op for memory backend
func (m *MemoryBackend) Close() error {
	return nil
}
