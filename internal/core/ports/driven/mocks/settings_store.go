package mocks

import (
	"context"
	"sync"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
)

// MockSettingsStore is a mock implementation of SettingsStore for testing
type MockSettingsStore struct {
	mu       sync.RWMutex
	settings map[string]*domain.UserSettings
}

// NewMockSettingsStore creates a new MockSettingsStore
func NewMockSettingsStore() *MockSettingsStore {
	return &MockSettingsStore{
		settings: make(map[string]*domain.UserSettings),
	}
}

func (m *MockSettingsStore) Get(ctx context.Context, userID string) (*domain.UserSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.settings[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *MockSettingsStore) Save(ctx context.Context, settings *domain.UserSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[settings.UserID] = settings
	return nil
}
