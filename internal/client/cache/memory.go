package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	updatedAt time.Time
}

// Memory is an in-process Cache. The zero value is not usable; use NewMemory.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (m *Memory) Get(_ context.Context, kind, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[EntryKey(kind, key)]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), e.data...), true, nil
}

func (m *Memory) Put(_ context.Context, kind, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[EntryKey(kind, key)] = memoryEntry{
		data:      append([]byte(nil), data...),
		updatedAt: time.Now(),
	}
	return nil
}

func (m *Memory) Clear(_ context.Context, kind, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, EntryKey(kind, key))
	return nil
}

// Len reports the number of stored entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
