package driving

import (
	"context"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
)

// ProjectService manages the project aggregate.
type ProjectService interface {
	Create(ctx context.Context, userID, name, description string) (*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, userID string) ([]*domain.Project, error)
	Update(ctx context.Context, id, name, description string) (*domain.Project, error)

	// Delete transitively removes all owned entities and their
	// vector-index entries. No orphaned embeddings survive.
	Delete(ctx context.Context, id string) error
}

// NoteService manages project notes.
type NoteService interface {
	Create(ctx context.Context, projectID, name, content string) (*domain.Note, error)
	Get(ctx context.Context, id string) (*domain.Note, error)
	List(ctx context.Context, projectID string) ([]*domain.Note, error)
	Update(ctx context.Context, id, name, content string) (*domain.Note, error)
	Delete(ctx context.Context, id string) error
}

// ChatService manages chats and exposes conversation history.
type ChatService interface {
	Create(ctx context.Context, projectID, title string) (*domain.Chat, error)
	Get(ctx context.Context, id string) (*domain.Chat, error)
	List(ctx context.Context, projectID string) ([]*domain.Chat, error)
	Rename(ctx context.Context, id, title string) error
	Delete(ctx context.Context, id string) error
	Messages(ctx context.Context, chatID string) ([]*domain.Message, error)
}
