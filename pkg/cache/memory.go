package cache

import (
	"context"
	"sync"
	"time"
)

const defaultTTL = time.Hour

type memoryEntry[V any] struct {
	expiresAt time.Time // zero never expires
	value     V
}

// Memory is an in-process cache. Expired entries are dropped when read.
type Memory[V any] struct {
	now        func() time.Time
	items      map[string]memoryEntry[V]
	defaultTTL time.Duration
	mu         sync.RWMutex
}

// MemoryOption configures Memory.
type MemoryOption func(*memoryConfig)

type memoryConfig struct {
	now        func() time.Time
	defaultTTL time.Duration
}

// WithDefaultTTL sets the ttl used when Set gets zero. Default: 1 hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(c *memoryConfig) {
		if d != 0 {
			c.defaultTTL = d
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(c *memoryConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// NewMemory creates an empty in-process cache.
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	cfg := memoryConfig{now: time.Now, defaultTTL: defaultTTL}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Memory[V]{
		now:        cfg.now,
		items:      make(map[string]memoryEntry[V]),
		defaultTTL: cfg.defaultTTL,
	}
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()

	if ok && (e.expiresAt.IsZero() || m.now().Before(e.expiresAt)) {
		return e.value, nil
	}
	if ok {
		m.mu.Lock()
		if cur, still := m.items[key]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(m.items, key)
		}
		m.mu.Unlock()
	}
	var zero V
	return zero, ErrNotFound
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	if ttl == 0 {
		ttl = m.defaultTTL
	}
	e := memoryEntry[V]{value: value}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.items[key] = e
	m.mu.Unlock()
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

var _ Cache[any] = (*Memory[any])(nil)
