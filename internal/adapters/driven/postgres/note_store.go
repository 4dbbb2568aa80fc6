package postgres

import (
	"context"
	"database/sql"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.NoteStore = (*NoteStore)(nil)

// NoteStore implements driven.NoteStore using PostgreSQL
type NoteStore struct {
	db *DB
}

// NewNoteStore creates a new NoteStore
func NewNoteStore(db *DB) *NoteStore {
	return &NoteStore{db: db}
}

// Save creates or updates a note
func (s *NoteStore) Save(ctx context.Context, note *domain.Note) error {
	query := `
		INSERT INTO notes (id, project_id, name, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			content = EXCLUDED.content,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		note.ID,
		note.ProjectID,
		note.Name,
		note.Content,
		note.CreatedAt,
		note.UpdatedAt,
	)
	return err
}

// Get retrieves a note by ID
func (s *NoteStore) Get(ctx context.Context, id string) (*domain.Note, error) {
	query := `SELECT id, project_id, name, content, created_at, updated_at FROM notes WHERE id = $1`

	var note domain.Note
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&note.ID,
		&note.ProjectID,
		&note.Name,
		&note.Content,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &note, nil
}

// ListByProject retrieves all notes of a project
func (s *NoteStore) ListByProject(ctx context.Context, projectID string) ([]*domain.Note, error) {
	query := `
		SELECT id, project_id, name, content, created_at, updated_at
		FROM notes
		WHERE project_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		var note domain.Note
		err := rows.Scan(
			&note.ID,
			&note.ProjectID,
			&note.Name,
			&note.Content,
			&note.CreatedAt,
			&note.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}

// Delete deletes a note
func (s *NoteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
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
