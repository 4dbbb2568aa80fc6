package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
)

// MockPassageStore is a mock implementation of PassageStore for testing
type MockPassageStore struct {
	mu       sync.RWMutex
	passages map[string]*domain.Passage
	failNext error
}

// NewMockPassageStore creates a new MockPassageStore
func NewMockPassageStore() *MockPassageStore {
	return &MockPassageStore{
		passages: make(map[string]*domain.Passage),
	}
}

func (m *MockPassageStore) SaveBatch(ctx context.Context, passages []*domain.Passage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failNext; err != nil {
		m.failNext = nil
		return err
	}
	for _, p := range passages {
		m.passages[p.ID] = p
	}
	return nil
}

func (m *MockPassageStore) Get(ctx context.Context, id string) (*domain.Passage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.passages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *MockPassageStore) GetBatch(ctx context.Context, ids []string) ([]*domain.Passage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Passage
	for _, id := range ids {
		if p, ok := m.passages[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *MockPassageStore) ListByDocument(ctx context.Context, documentID string) ([]*domain.Passage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Passage
	for _, p := range m.passages {
		if p.DocumentID == documentID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Position < result[j].Position })
	return result, nil
}

func (m *MockPassageStore) DeleteByDocument(ctx context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, p := range m.passages {
		if p.DocumentID == documentID {
			delete(m.passages, id)
		}
	}
	return nil
}

// Helper methods for testing

func (m *MockPassageStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.passages)
}

func (m *MockPassageStore) SetFailNext(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = err
}
