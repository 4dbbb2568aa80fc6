package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
)

// MockChatStore is a mock implementation of ChatStore for testing
type MockChatStore struct {
	mu       sync.RWMutex
	chats    map[string]*domain.Chat
	messages map[string][]*domain.Message // chatID -> messages in creation order
}

// NewMockChatStore creates a new MockChatStore
func NewMockChatStore() *MockChatStore {
	return &MockChatStore{
		chats:    make(map[string]*domain.Chat),
		messages: make(map[string][]*domain.Message),
	}
}

func (m *MockChatStore) SaveChat(ctx context.Context, chat *domain.Chat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chats[chat.ID] = chat
	return nil
}

func (m *MockChatStore) GetChat(ctx context.Context, id string) (*domain.Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	chat, ok := m.chats[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return chat, nil
}

func (m *MockChatStore) ListChats(ctx context.Context, projectID string) ([]*domain.Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Chat
	for _, c := range m.chats {
		if c.ProjectID == projectID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *MockChatStore) RenameChat(ctx context.Context, id, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	chat, ok := m.chats[id]
	if !ok {
		return domain.ErrNotFound
	}
	chat.Title = title
	chat.UpdatedAt = time.Now()
	return nil
}

func (m *MockChatStore) DeleteChat(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.chats[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.chats, id)
	delete(m.messages, id)
	return nil
}

func (m *MockChatStore) AppendMessage(ctx context.Context, msg *domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[msg.ChatID] = append(m.messages[msg.ChatID], msg)
	return nil
}

func (m *MockChatStore) ListMessages(ctx context.Context, chatID string) ([]*domain.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msgs := m.messages[chatID]
	result := make([]*domain.Message, len(msgs))
	copy(result, msgs)
	return result, nil
}

func (m *MockChatStore) LastMessages(ctx context.Context, chatID string, limit int) ([]*domain.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msgs := m.messages[chatID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	result := make([]*domain.Message, len(msgs))
	copy(result, msgs)
	return result, nil
}
