package postgres

import (
	"context"
	"database/sql"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore implements driven.SettingsStore using PostgreSQL
type SettingsStore struct {
	db *DB
}

// NewSettingsStore creates a new SettingsStore
func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get retrieves a user's settings
func (s *SettingsStore) Get(ctx context.Context, userID string) (*domain.UserSettings, error) {
	query := `
		SELECT user_id, model, temperature, answer_length, embedding_model, top_k, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	var settings domain.UserSettings
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&settings.UserID,
		&settings.Generation.Model,
		&settings.Generation.Temperature,
		&settings.Generation.AnswerLength,
		&settings.EmbeddingModel,
		&settings.TopK,
		&settings.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &settings, nil
}

// Save creates or updates a user's settings
func (s *SettingsStore) Save(ctx context.Context, settings *domain.UserSettings) error {
	query := `
		INSERT INTO user_settings (user_id, model, temperature, answer_length, embedding_model, top_k, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			model = EXCLUDED.model,
			temperature = EXCLUDED.temperature,
			answer_length = EXCLUDED.answer_length,
			embedding_model = EXCLUDED.embedding_model,
			top_k = EXCLUDED.top_k,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		settings.UserID,
		settings.Generation.Model,
		settings.Generation.Temperature,
		string(settings.Generation.AnswerLength),
		settings.EmbeddingModel,
		settings.TopK,
		settings.UpdatedAt,
	)
	return err
}
