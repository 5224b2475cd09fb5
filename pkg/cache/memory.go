package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	value    []byte
	storedAt time.Time
	expireAt time.Time // zero means no expiry
}

// Memory is an in-process Store. Reads and writes are safe under concurrent
// callers: the whole payload is swapped under the lock, so a reader sees
// either the old value or the new one, never a mix. Expired entries are
// purged lazily on access and by a background sweep.
type Memory struct {
	mu      sync.RWMutex
	data    map[string]*memoryItem
	access  map[string]time.Time
	maxSize int
	clock   func() time.Time
	ticker  *time.Ticker
	done    chan struct{}
}

// NewMemory creates an in-memory cache.
func NewMemory(opts ...MemoryOption) *Memory {
	cfg := &MemoryConfig{
		CleanupInterval: 5 * time.Minute,
		Clock:           time.Now,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	m := &Memory{
		data:    make(map[string]*memoryItem),
		access:  make(map[string]time.Time),
		maxSize: cfg.MaxSize,
		clock:   cfg.Clock,
		done:    make(chan struct{}),
	}

	if cfg.CleanupInterval > 0 {
		m.ticker = time.NewTicker(cfg.CleanupInterval)
		go m.sweep()
	}
	return m
}

func (m *Memory) expired(it *memoryItem, now time.Time) bool {
	// A read at or after storedAt+ttl is a miss; the boundary itself counts.
	return !it.expireAt.IsZero() && !now.Before(it.expireAt)
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	now := m.clock()

	m.mu.Lock()
	defer m.mu.Unlock()

	it, exists := m.data[key]
	if !exists {
		return nil, false, nil
	}
	if m.expired(it, now) {
		delete(m.data, key)
		delete(m.access, key)
		return nil, false, nil
	}

	m.access[key] = now
	return it.value, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	now := m.clock()

	var expireAt time.Time
	if ttl > 0 {
		expireAt = now.Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists && m.maxSize > 0 && len(m.data) >= m.maxSize {
		m.evictLRU()
	}

	m.data[key] = &memoryItem{value: value, storedAt: now, expireAt: expireAt}
	m.access[key] = now
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.data, key)
		delete(m.access, key)
	}
	return nil
}

// Len reports the number of entries, including not yet swept expired ones.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *Memory) evictLRU() {
	var oldestKey string
	var oldestTime time.Time

	for key, accessTime := range m.access {
		if oldestKey == "" || accessTime.Before(oldestTime) {
			oldestTime = accessTime
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(m.data, oldestKey)
		delete(m.access, oldestKey)
	}
}

func (m *Memory) sweep() {
	for {
		select {
		case <-m.done:
			return
		case <-m.ticker.C:
			now := m.clock()
			m.mu.Lock()
			for key, it := range m.data {
				if m.expired(it, now) {
					delete(m.data, key)
					delete(m.access, key)
				}
			}
			m.mu.Unlock()
		}
	}
}

// Close stops the background sweep.
func (m *Memory) Close() error {
	if m.ticker != nil {
		m.ticker.Stop()
		close(m.done)
	}
	return nil
}
