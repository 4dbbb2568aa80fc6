package mocks

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
)

// MockVectorIndex is an in-memory implementation of VectorIndex for
// testing. Queries compute real cosine similarity over the stored vectors
// unless fixed scores are installed per passage.
type MockVectorIndex struct {
	mu          sync.RWMutex
	vectors     map[string]driven.PassageVector // by passage id
	fixedScores map[string]float64              // overrides similarity per passage id
	failNext    error
	failAlways  error
}

// NewMockVectorIndex creates a new MockVectorIndex
func NewMockVectorIndex() *MockVectorIndex {
	return &MockVectorIndex{
		vectors:     make(map[string]driven.PassageVector),
		fixedScores: make(map[string]float64),
	}
}

func (m *MockVectorIndex) Upsert(ctx context.Context, vectors []driven.PassageVector) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return err
	}
	for _, v := range vectors {
		m.vectors[v.PassageID] = v
	}
	return nil
}

func (m *MockVectorIndex) Query(ctx context.Context, vector []float32, scope domain.RetrievalScope, k int) ([]driven.VectorMatch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failAlways != nil {
		return nil, m.failAlways
	}

	selected := make(map[string]bool, len(scope.DocumentIDs))
	for _, id := range scope.DocumentIDs {
		selected[id] = true
	}

	var matches []driven.VectorMatch
	for _, v := range m.vectors {
		if v.ProjectID != scope.ProjectID {
			continue
		}
		if len(scope.DocumentIDs) > 0 && !selected[v.DocumentID] {
			continue
		}
		if scope.Interviewee != "" && v.Interviewee != scope.Interviewee {
			continue
		}
		score, ok := m.fixedScores[v.PassageID]
		if !ok {
			score = cosine(vector, v.Values)
		}
		matches = append(matches, driven.VectorMatch{
			PassageID: v.PassageID,
			Score:     score,
			Position:  v.Position,
		})
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if k > 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

func (m *MockVectorIndex) DeleteByDocument(ctx context.Context, projectID, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return err
	}
	for id, v := range m.vectors {
		if v.ProjectID == projectID && v.DocumentID == documentID {
			delete(m.vectors, id)
		}
	}
	return nil
}

func (m *MockVectorIndex) DeleteByProject(ctx context.Context, projectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return err
	}
	for id, v := range m.vectors {
		if v.ProjectID == projectID {
			delete(m.vectors, id)
		}
	}
	return nil
}

func (m *MockVectorIndex) HealthCheck(ctx context.Context) error {
	return nil
}

func (m *MockVectorIndex) fail() error {
	if m.failAlways != nil {
		return m.failAlways
	}
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	return nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Helper methods for testing

func (m *MockVectorIndex) SetScore(passageID string, score float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixedScores[passageID] = score
}

func (m *MockVectorIndex) SetFailNext(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = err
}

func (m *MockVectorIndex) SetFailAlways(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failAlways = err
}

// Count returns how many vectors are stored.
func (m *MockVectorIndex) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.vectors)
}

// Has reports whether a vector exists for the passage.
func (m *MockVectorIndex) Has(passageID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.vectors[passageID]
	return ok
}
