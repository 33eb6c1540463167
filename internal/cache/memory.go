package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Memory is an in-process LRU with per-entry expiry. When MaxEntries is
// reached the least recently used entry is evicted.
type Memory struct {
	mu      sync.Mutex
	opts    Options
	ll      *list.List
	entries map[string]*list.Element
	now     func() time.Time
}

type memoryEntry struct {
	key       string
	value     string
	expiresAt time.Time
}

var _ Cache = (*Memory)(nil)

func NewMemory(opts Options) *Memory {
	return &Memory{
		opts:    opts.withDefaults(),
		ll:      list.New(),
		entries: make(map[string]*list.Element),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.entries[key]
	if !ok {
		return "", ErrMiss
	}
	entry := el.Value.(*memoryEntry)
	if !m.now().Before(entry.expiresAt) {
		m.removeElement(el)
		return "", ErrMiss
	}
	m.ll.MoveToFront(el)
	return entry.value, nil
}

func (m *Memory) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiresAt := m.now().Add(m.opts.TTL)
	if el, ok := m.entries[key]; ok {
		entry := el.Value.(*memoryEntry)
		entry.value = value
		entry.expiresAt = expiresAt
		m.ll.MoveToFront(el)
		return nil
	}

	m.entries[key] = m.ll.PushFront(&memoryEntry{key: key, value: value, expiresAt: expiresAt})
	for m.ll.Len() > m.opts.MaxEntries {
		m.removeElement(m.ll.Back())
	}
	return nil
}

func (m *Memory) Invalidate(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		if el, ok := m.entries[key]; ok {
			m.removeElement(el)
		}
	}
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ll.Len()
}

func (m *Memory) removeElement(el *list.Element) {
	m.ll.Remove(el)
	delete(m.entries, el.Value.(*memoryEntry).key)
}
