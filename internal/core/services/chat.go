package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driving"
)

// Ensure chatService implements ChatService
var _ driving.ChatService = (*chatService)(nil)

type chatService struct {
	chats    driven.ChatStore
	projects driven.ProjectStore
	logger   *slog.Logger
}

// NewChatService creates a ChatService.
func NewChatService(chats driven.ChatStore, projects driven.ProjectStore, logger *slog.Logger) driving.ChatService {
	if logger == nil {
		logger = slog.Default()
	}
	return &chatService{chats: chats, projects: projects, logger: logger}
}

func (s *chatService) Create(ctx context.Context, projectID, title string) (*domain.Chat, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	if title == "" {
		title = "New chat"
	}

	now := time.Now()
	chat := &domain.Chat{
		ID:        domain.NewID(),
		ProjectID: projectID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.chats.SaveChat(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

func (s *chatService) Get(ctx context.Context, id string) (*domain.Chat, error) {
	return s.chats.GetChat(ctx, id)
}

func (s *chatService) List(ctx context.Context, projectID string) ([]*domain.Chat, error) {
	return s.chats.ListChats(ctx, projectID)
}

func (s *chatService) Rename(ctx context.Context, id, title string) error {
	if title == "" {
		return domain.ErrInvalidInput
	}
	return s.chats.RenameChat(ctx, id, title)
}

func (s *chatService) Delete(ctx context.Context, id string) error {
	return s.chats.DeleteChat(ctx, id)
}

func (s *chatService) Messages(ctx context.Context, chatID string) ([]*domain.Message, error) {
	if _, err := s.chats.GetChat(ctx, chatID); err != nil {
		return nil, err
	}
	return s.chats.ListMessages(ctx, chatID)
}
