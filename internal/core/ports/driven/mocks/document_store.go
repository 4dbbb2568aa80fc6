package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
)

// MockDocumentStore is a mock implementation of DocumentStore for testing
type MockDocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*domain.Document
	order     []string // insertion order of document ids
}

// NewMockDocumentStore creates a new MockDocumentStore
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{
		documents: make(map[string]*domain.Document),
	}
}

func (m *MockDocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.documents[doc.ID]; !ok {
		m.order = append(m.order, doc.ID)
	}
	m.documents[doc.ID] = doc
	return nil
}

func (m *MockDocumentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (m *MockDocumentStore) ListByProject(ctx context.Context, projectID string) ([]*domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var docs []*domain.Document
	for _, id := range m.order {
		if doc := m.documents[id]; doc != nil && doc.ProjectID == projectID {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (m *MockDocumentStore) ListInterviewees(ctx context.Context, projectID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]bool)
	var interviewees []string
	for _, id := range m.order {
		doc := m.documents[id]
		if doc == nil || doc.ProjectID != projectID || !doc.Retrievable() {
			continue
		}
		if doc.Interviewee == "" || seen[doc.Interviewee] {
			continue
		}
		seen[doc.Interviewee] = true
		interviewees = append(interviewees, doc.Interviewee)
	}
	return interviewees, nil
}

func (m *MockDocumentStore) SetIndexStatus(ctx context.Context, id string, status domain.IndexStatus, indexError, embeddingModel string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.IndexStatus = status
	doc.IndexError = indexError
	doc.EmbeddingModel = embeddingModel
	doc.UpdatedAt = time.Now()
	return nil
}

func (m *MockDocumentStore) SetSummary(ctx context.Context, id string, summary string, status domain.SummaryStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Summary = summary
	doc.SummaryStatus = status
	doc.UpdatedAt = time.Now()
	return nil
}

func (m *MockDocumentStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.documents, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Helper methods for testing

func (m *MockDocumentStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents = make(map[string]*domain.Document)
	m.order = nil
}
