package store

import (
	"sync"
	"time"
)

// Memory is an in-memory store, used by tests and database-less
// sessions.
type Memory struct {
	mu       sync.RWMutex
	entries  []Entry
	settings map[string]string
	nextID   int64
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{
		settings: make(map[string]string),
		nextID:   1,
	}
}

// Append records an evaluation.
func (m *Memory) Append(e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = m.nextID
	m.nextID++
	if e.When.IsZero() {
		e.When = time.Now()
	}
	m.entries = append(m.entries, e)
	return nil
}

// Recent returns up to limit entries, newest first.
func (m *Memory) Recent(limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := len(m.entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Entry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, m.entries[i])
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// Last returns the most recent entry.
func (m *Memory) Last() (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.entries) == 0 {
		return Entry{}, false, nil
	}
	return m.entries[len(m.entries)-1], true, nil
}

// Setting retrieves a setting value by key.
func (m *Memory) Setting(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.settings[key]
	return v, ok, nil
}

// PutSetting stores a setting value by key.
func (m *Memory) PutSetting(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}

// Clear removes all history entries.
func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}

// Close is a no-op for the memory store.
func (m *Memory) Close() error {
	return nil
}
