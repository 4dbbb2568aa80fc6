package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driving"
)

// Ensure askService implements AskService
var _ driving.AskService = (*askService)(nil)

// askService orchestrates one question: strategy selection, composition
// and conversation bookkeeping. All work is request-scoped; the only
// state crossing requests lives in the external stores.
type askService struct {
	projects driven.ProjectStore
	chats    driven.ChatStore
	settings driven.SettingsStore
	selector *Selector
	composer *Composer
	window   domain.HistoryWindow
	logger   *slog.Logger
}

// NewAskService creates the ask pipeline entry point.
func NewAskService(
	projects driven.ProjectStore,
	chats driven.ChatStore,
	settings driven.SettingsStore,
	selector *Selector,
	composer *Composer,
	logger *slog.Logger,
) driving.AskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &askService{
		projects: projects,
		chats:    chats,
		settings: settings,
		selector: selector,
		composer: composer,
		window:   domain.DefaultHistoryWindow(),
		logger:   logger,
	}
}

// Ask answers one user question and appends both conversation turns.
func (s *askService) Ask(ctx context.Context, req domain.AskRequest) (*domain.AskResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	project, err := s.projects.Get(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	chat, err := s.chats.GetChat(ctx, req.ChatID)
	if err != nil {
		return nil, err
	}
	if chat.ProjectID != project.ID {
		return nil, domain.ErrNotFound
	}

	// Generation settings come from the owner's stored preferences,
	// overridden by whatever the request carries. They are threaded
	// explicitly from here on; nothing below reads ambient state.
	userSettings, err := s.settings.Get(ctx, project.UserID)
	if err != nil {
		userSettings = domain.DefaultUserSettings(project.UserID)
	}
	req.Settings = req.Settings.Normalize(userSettings.Generation)
	topK := userSettings.TopK

	// History window is taken before the new question is appended.
	prior, err := s.chats.LastMessages(ctx, req.ChatID, s.window.MaxMessages)
	if err != nil {
		return nil, err
	}
	history := domain.RenderHistory(prior, s.window)

	userMsg := &domain.Message{
		ID:        domain.NewID(),
		ChatID:    req.ChatID,
		Role:      domain.RoleUser,
		Content:   req.Query,
		CreatedAt: time.Now(),
	}
	if err := s.chats.AppendMessage(ctx, userMsg); err != nil {
		return nil, err
	}

	start := time.Now()
	strategy, err := s.selector.Select(ctx, req.Query, history, req.Settings)
	if err != nil {
		return nil, err
	}

	comp, err := s.composer.Compose(ctx, strategy, req, history, topK)
	if err != nil {
		return nil, err
	}

	assistantMsg := &domain.Message{
		ID:        domain.NewID(),
		ChatID:    req.ChatID,
		Role:      domain.RoleAssistant,
		Content:   comp.Answer,
		Citations: comp.Citations,
		Strategy:  comp.Strategy,
		CreatedAt: time.Now(),
	}
	if err := s.chats.AppendMessage(ctx, assistantMsg); err != nil {
		return nil, err
	}

	s.logger.Info("question answered",
		"project_id", req.ProjectID,
		"chat_id", req.ChatID,
		"strategy", comp.Strategy,
		"citations", len(comp.Citations),
		"took", time.Since(start),
	)

	return &domain.AskResponse{
		Answer:    comp.Answer,
		Citations: comp.Citations,
		Strategy:  comp.Strategy,
		Message:   assistantMsg,
	}, nil
}
