package cache

import (
	"container/list"
	"context"
	"sync"
)

// Memory is an in-process Cache with strict insertion-order eviction. When
// the cache exceeds its capacity the first-inserted surviving entry is
// removed, regardless of how recently it was read. Overwriting an existing
// key keeps its original position in the eviction order.
type Memory struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // of string keys, front = oldest insertion
	entries  map[string]*memoryEntry
	stats    Stats
	closed   bool
}

type memoryEntry struct {
	value []byte
	elem  *list.Element
}

// NewMemory returns a Memory cache holding at most capacity entries. A
// capacity of zero or less means unbounded.
func NewMemory(capacity int) *Memory {
	return &Memory{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*memoryEntry),
	}
}

// Get implements Cache. A hit does not refresh the entry's eviction position.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrInvalidKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, false, ErrClosed
	}
	e, ok := m.entries[key]
	if !ok {
		m.stats.Misses++
		return nil, false, nil
	}
	m.stats.Hits++
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true, nil
}

// Put implements Cache.
func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	if key == "" {
		return ErrInvalidKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	if e, ok := m.entries[key]; ok {
		e.value = stored
		return nil
	}
	elem := m.order.PushBack(key)
	m.entries[key] = &memoryEntry{value: stored, elem: elem}
	for m.capacity > 0 && len(m.entries) > m.capacity {
		oldest := m.order.Front()
		oldKey := oldest.Value.(string)
		m.order.Remove(oldest)
		delete(m.entries, oldKey)
		m.stats.Evictions++
	}
	return nil
}

// Len implements Cache.
func (m *Memory) Len(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrClosed
	}
	return len(m.entries), nil
}

// Clear implements Cache.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.order.Init()
	m.entries = make(map[string]*memoryEntry)
	return nil
}

// Stats implements Cache.
func (m *Memory) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Close implements Cache.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.order.Init()
	m.entries = nil
	return nil
}
