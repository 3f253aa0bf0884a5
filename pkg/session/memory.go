package session

import (
	"context"
	"sync"
)

// Memory keeps sessions in process memory.
// It is the default backend and the one used in tests.
// Entries are stored encoded so callers never share maps with the store.
type Memory struct {
	items map[string][]byte
	opts  options
	mu    sync.RWMutex
}

// NewMemory creates an empty in-process backend.
func NewMemory(opts ...Option) *Memory {
	return &Memory{
		items: make(map[string][]byte),
		opts:  buildOptions(opts),
	}
}

// Load returns the stored data for id, or empty data when none exists.
func (m *Memory) Load(_ context.Context, id string) (Data, error) {
	if id == "" {
		return Data{}, nil
	}
	m.mu.RLock()
	b, ok := m.items[id]
	m.mu.RUnlock()
	if !ok {
		return Data{}, nil
	}
	return decode(b)
}

// Save replaces the data stored for id.
func (m *Memory) Save(_ context.Context, id string, data Data) error {
	if id == "" {
		return nil
	}
	b, err := encode(data)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.items[id] = b
	m.mu.Unlock()
	return nil
}

// NewID returns a fresh identifier.
func (m *Memory) NewID() string {
	return m.opts.newID()
}

// Len returns the number of stored sessions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
