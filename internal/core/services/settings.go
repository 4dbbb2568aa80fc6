package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driving"
)

// Ensure settingsService implements SettingsService
var _ driving.SettingsService = (*settingsService)(nil)

type settingsService struct {
	settings driven.SettingsStore
	logger   *slog.Logger
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(settings driven.SettingsStore, logger *slog.Logger) driving.SettingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &settingsService{settings: settings, logger: logger}
}

// Get returns the user's stored settings, or the defaults if none were
// ever saved.
func (s *settingsService) Get(ctx context.Context, userID string) (*domain.UserSettings, error) {
	stored, err := s.settings.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DefaultUserSettings(userID), nil
		}
		return nil, err
	}
	return stored, nil
}

func (s *settingsService) Update(ctx context.Context, settings *domain.UserSettings) (*domain.UserSettings, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := s.settings.Save(ctx, settings); err != nil {
		return nil, err
	}
	s.logger.Info("settings updated", "user_id", settings.UserID)
	return settings, nil
}
