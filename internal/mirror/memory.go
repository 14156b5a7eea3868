// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mirror

import "sync"

// Memory is an in-process Mirror, used by tests and by --mirror memory.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
	writes int
}

// NewMemory returns an empty Memory mirror.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.writes++
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *Memory) Close() error { return nil }

// Writes returns the number of Set calls served so far.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
