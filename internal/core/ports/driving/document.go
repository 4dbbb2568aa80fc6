package driving

import (
	"context"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
)

// DocumentService manages uploads and the indexing lifecycle.
type DocumentService interface {
	// Upload extracts text from the file, persists the document in
	// pending state and enqueues indexing and summary generation.
	Upload(ctx context.Context, projectID, name, interviewee string, file []byte) (*domain.Document, error)

	Get(ctx context.Context, id string) (*domain.Document, error)
	GetWithPassages(ctx context.Context, id string) (*domain.DocumentWithPassages, error)
	List(ctx context.Context, projectID string) ([]*domain.Document, error)

	// Reindex re-enqueues indexing for a document, e.g. after the
	// embedding service recovers from an outage.
	Reindex(ctx context.Context, id string) error

	// Delete removes the document, its passages and its vectors.
	Delete(ctx context.Context, id string) error
}

// SettingsService manages per-user generation settings.
type SettingsService interface {
	Get(ctx context.Context, userID string) (*domain.UserSettings, error)
	Update(ctx context.Context, settings *domain.UserSettings) (*domain.UserSettings, error)
}
