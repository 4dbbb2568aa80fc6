package driven

import (
	"context"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
)

// ProjectStore persists projects. Project deletion cascades to documents,
// passages, chats, messages and notes in the relational store; vector-index
// cleanup is the caller's responsibility.
type ProjectStore interface {
	Save(ctx context.Context, project *domain.Project) error
	Get(ctx context.Context, id string) (*domain.Project, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

// DocumentStore persists documents and their index lifecycle.
type DocumentStore interface {
	Save(ctx context.Context, doc *domain.Document) error
	Get(ctx context.Context, id string) (*domain.Document, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Document, error)

	// ListInterviewees returns the distinct interviewee labels of
	// retrievable documents in a project, in insertion order.
	ListInterviewees(ctx context.Context, projectID string) ([]string, error)

	// SetIndexStatus updates the index lifecycle fields. indexError and
	// embeddingModel may be empty.
	SetIndexStatus(ctx context.Context, id string, status domain.IndexStatus, indexError, embeddingModel string) error

	// SetSummary stores the generated summary and its status.
	SetSummary(ctx context.Context, id string, summary string, status domain.SummaryStatus) error

	Delete(ctx context.Context, id string) error
}

// PassageStore persists passages. Embeddings live in the vector index,
// never here.
type PassageStore interface {
	SaveBatch(ctx context.Context, passages []*domain.Passage) error
	Get(ctx context.Context, id string) (*domain.Passage, error)
	GetBatch(ctx context.Context, ids []string) ([]*domain.Passage, error)
	ListByDocument(ctx context.Context, documentID string) ([]*domain.Passage, error)
	DeleteByDocument(ctx context.Context, documentID string) error
}

// ChatStore persists chats and their append-only messages.
type ChatStore interface {
	SaveChat(ctx context.Context, chat *domain.Chat) error
	GetChat(ctx context.Context, id string) (*domain.Chat, error)
	ListChats(ctx context.Context, projectID string) ([]*domain.Chat, error)
	RenameChat(ctx context.Context, id, title string) error
	DeleteChat(ctx context.Context, id string) error

	// AppendMessage appends a message; messages are never updated.
	AppendMessage(ctx context.Context, msg *domain.Message) error

	// ListMessages returns messages in creation order.
	ListMessages(ctx context.Context, chatID string) ([]*domain.Message, error)

	// LastMessages returns the most recent limit messages in creation order.
	LastMessages(ctx context.Context, chatID string, limit int) ([]*domain.Message, error)
}

// NoteStore persists free-text notes.
type NoteStore interface {
	Save(ctx context.Context, note *domain.Note) error
	Get(ctx context.Context, id string) (*domain.Note, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Note, error)
	Delete(ctx context.Context, id string) error
}

// UserStore persists user accounts.
type UserStore interface {
	Save(ctx context.Context, user *domain.User) error
	Get(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// SessionStore persists authenticated sessions.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// SettingsStore persists per-user generation settings.
type SettingsStore interface {
	Get(ctx context.Context, userID string) (*domain.UserSettings, error)
	Save(ctx context.Context, settings *domain.UserSettings) error
}
