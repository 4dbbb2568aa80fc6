package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ChatStore = (*ChatStore)(nil)

// ChatStore implements driven.ChatStore using PostgreSQL. Messages are
// append-only; a serial column orders them even when timestamps collide.
type ChatStore struct {
	db *DB
}

// NewChatStore creates a new ChatStore
func NewChatStore(db *DB) *ChatStore {
	return &ChatStore{db: db}
}

// SaveChat creates or updates a chat
func (s *ChatStore) SaveChat(ctx context.Context, chat *domain.Chat) error {
	query := `
		INSERT INTO chats (id, project_id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		chat.ID,
		chat.ProjectID,
		chat.Title,
		chat.CreatedAt,
		chat.UpdatedAt,
	)
	return err
}

// GetChat retrieves a chat by ID
func (s *ChatStore) GetChat(ctx context.Context, id string) (*domain.Chat, error) {
	query := `SELECT id, project_id, title, created_at, updated_at FROM chats WHERE id = $1`

	var chat domain.Chat
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&chat.ID,
		&chat.ProjectID,
		&chat.Title,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &chat, nil
}

// ListChats retrieves all chats of a project, most recent first
func (s *ChatStore) ListChats(ctx context.Context, projectID string) ([]*domain.Chat, error) {
	query := `
		SELECT id, project_id, title, created_at, updated_at
		FROM chats
		WHERE project_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []*domain.Chat
	for rows.Next() {
		var chat domain.Chat
		err := rows.Scan(
			&chat.ID,
			&chat.ProjectID,
			&chat.Title,
			&chat.CreatedAt,
			&chat.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		chats = append(chats, &chat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return chats, nil
}

// RenameChat updates the chat title
func (s *ChatStore) RenameChat(ctx context.Context, id, title string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE chats SET title = $1, updated_at = $2 WHERE id = $3`,
		title, time.Now(), id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// DeleteChat deletes a chat; messages cascade via foreign key
func (s *ChatStore) DeleteChat(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM chats WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// AppendMessage appends a message to a chat
func (s *ChatStore) AppendMessage(ctx context.Context, msg *domain.Message) error {
	citations, err := json.Marshal(msg.Citations)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO messages (id, chat_id, role, content, citations, strategy, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = s.db.ExecContext(ctx, query,
		msg.ID,
		msg.ChatID,
		string(msg.Role),
		msg.Content,
		citations,
		string(msg.Strategy),
		msg.CreatedAt,
	)
	return err
}

// ListMessages returns all messages of a chat in creation order
func (s *ChatStore) ListMessages(ctx context.Context, chatID string) ([]*domain.Message, error) {
	query := `
		SELECT id, chat_id, role, content, citations, strategy, created_at
		FROM messages
		WHERE chat_id = $1
		ORDER BY seq ASC
	`

	rows, err := s.db.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

// LastMessages returns the most recent limit messages in creation order
func (s *ChatStore) LastMessages(ctx context.Context, chatID string, limit int) ([]*domain.Message, error) {
	query := `
		SELECT id, chat_id, role, content, citations, strategy, created_at
		FROM (
			SELECT seq, id, chat_id, role, content, citations, strategy, created_at
			FROM messages
			WHERE chat_id = $1
			ORDER BY seq DESC
			LIMIT $2
		) recent
		ORDER BY seq ASC
	`

	rows, err := s.db.QueryContext(ctx, query, chatID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

func scanMessages(rows *sql.Rows) ([]*domain.Message, error) {
	var messages []*domain.Message
	for rows.Next() {
		var msg domain.Message
		var citations []byte
		err := rows.Scan(
			&msg.ID,
			&msg.ChatID,
			&msg.Role,
			&msg.Content,
			&citations,
			&msg.Strategy,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if len(citations) > 0 {
			if err := json.Unmarshal(citations, &msg.Citations); err != nil {
				return nil, err
			}
		}
		messages = append(messages, &msg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
