package mocks

import (
	"context"
	"sync"
)

// MockSummaryCache is an in-memory implementation of SummaryCache for testing
type MockSummaryCache struct {
	mu      sync.RWMutex
	entries map[string]string
	gets    int
	hits    int
}

// NewMockSummaryCache creates a new MockSummaryCache
func NewMockSummaryCache() *MockSummaryCache {
	return &MockSummaryCache{entries: make(map[string]string)}
}

func (m *MockSummaryCache) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	v, ok := m.entries[key]
	if ok {
		m.hits++
	}
	return v, ok, nil
}

func (m *MockSummaryCache) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

// Helper methods for testing

func (m *MockSummaryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *MockSummaryCache) Hits() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hits
}
