package mocks

import (
	"context"
	"sync"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
)

// MockNoteStore is a mock implementation of NoteStore for testing
type MockNoteStore struct {
	mu    sync.RWMutex
	notes map[string]*domain.Note
}

// NewMockNoteStore creates a new MockNoteStore
func NewMockNoteStore() *MockNoteStore {
	return &MockNoteStore{
		notes: make(map[string]*domain.Note),
	}
}

func (m *MockNoteStore) Save(ctx context.Context, note *domain.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes[note.ID] = note
	return nil
}

func (m *MockNoteStore) Get(ctx context.Context, id string) (*domain.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	note, ok := m.notes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return note, nil
}

func (m *MockNoteStore) ListByProject(ctx context.Context, projectID string) ([]*domain.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Note
	for _, n := range m.notes {
		if n.ProjectID == projectID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (m *MockNoteStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.notes, id)
	return nil
}
