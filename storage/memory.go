package storage

import (
	"sync"
	"time"
)

type memoryItem struct {
	value      []byte
	expiration time.Time
}

// MemoryBackend keeps values in process memory. With a TTL it behaves like a
// tab-scoped store: entries vanish after ttl without a write.
type MemoryBackend struct {
	items  map[string]memoryItem
	ttl    time.Duration
	closed bool
	mu     sync.RWMutex
	now    func() time.Time
}

// NewMemoryBackend creates an empty in-memory backend. A zero ttl keeps
// entries until they are deleted.
func NewMemoryBackend(ttl time.Duration) *MemoryBackend {
	return &MemoryBackend{
		items: make(map[string]memoryItem),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get retrieves a copy of the value stored under key
func (m *MemoryBackend) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, false, ErrUnavailable
	}
	item, ok := m.items[key]
	if !ok || m.expired(item) {
		return nil, false, nil
	}
	return append([]byte(nil), item.value...), true, nil
}

// Set stores a copy of value under key
func (m *MemoryBackend) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrUnavailable
	}
	item := memoryItem{value: append([]byte(nil), value...)}
	if m.ttl > 0 {
		item.expiration = m.now().Add(m.ttl)
	}
	m.items[key] = item
	return nil
}

// Delete removes key; deleting a missing key is not an error
func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrUnavailable
	}
	delete(m.items, key)
	return nil
}

// Keys returns the keys of all live entries
func (m *MemoryBackend) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrUnavailable
	}
	keys := make([]string, 0, len(m.items))
	for key, item := range m.items {
		if !m.expired(item) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Close drops all entries; later calls fail with ErrUnavailable
func (m *MemoryBackend) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = nil
	m.closed = true
	return nil
}

// expired must be called with the lock held
func (m *MemoryBackend) expired(item memoryItem) bool {
	return !item.expiration.IsZero() && m.now().After(item.expiration)
}
