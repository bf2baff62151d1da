package kv

import (
	"context"
	"sync"
)

// MemoryStore keeps entries in a map. When capacity is positive the sum of
// key and value lengths may not exceed it.
type MemoryStore struct {
	mu       sync.Mutex
	data     map[string]string
	size     int
	capacity int
}

func NewMemoryStore(capacity int) *MemoryStore {
	return &MemoryStore{
		data:     make(map[string]string),
		capacity: capacity,
	}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	val, ok := m.data[key]
	if !ok {
		return "", ErrMiss
	}
	return val, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	size := m.size + len(key) + len(value)
	if old, ok := m.data[key]; ok {
		size -= len(key) + len(old)
	}
	if m.capacity > 0 && size > m.capacity {
		return ErrQuotaExceeded
	}
	m.data[key] = value
	m.size = size
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.data[key]; ok {
		m.size -= len(key) + len(old)
		delete(m.data, key)
	}
	return nil
}

// SetCapacity changes the limit for subsequent writes.
func (m *MemoryStore) SetCapacity(capacity int) {
	m.mu.Lock()
	m.capacity = capacity
	m.mu.Unlock()
}

// Size is the number of bytes currently held.
func (m *MemoryStore) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.size
}
