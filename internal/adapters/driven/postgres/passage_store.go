package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.PassageStore = (*PassageStore)(nil)

// PassageStore implements driven.PassageStore using PostgreSQL.
// Embeddings live in the vector index, never here.
type PassageStore struct {
	db *DB
}

// NewPassageStore creates a new PassageStore
func NewPassageStore(db *DB) *PassageStore {
	return &PassageStore{db: db}
}

const passageColumns = `id, document_id, project_id, interviewee, content, position, start_char, end_char, created_at`

// SaveBatch inserts a batch of passages in one transaction
func (s *PassageStore) SaveBatch(ctx context.Context, passages []*domain.Passage) error {
	if len(passages) == 0 {
		return nil
	}

	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO passages (` + passageColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, p := range passages {
			_, err := stmt.ExecContext(ctx,
				p.ID,
				p.DocumentID,
				p.ProjectID,
				p.Interviewee,
				p.Content,
				p.Position,
				p.StartChar,
				p.EndChar,
				p.CreatedAt,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Get retrieves a passage by ID
func (s *PassageStore) Get(ctx context.Context, id string) (*domain.Passage, error) {
	query := `SELECT ` + passageColumns + ` FROM passages WHERE id = $1`

	var p domain.Passage
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.DocumentID,
		&p.ProjectID,
		&p.Interviewee,
		&p.Content,
		&p.Position,
		&p.StartChar,
		&p.EndChar,
		&p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// GetBatch retrieves passages by id. Missing ids are silently skipped;
// the vector index may briefly reference passages that are already gone.
func (s *PassageStore) GetBatch(ctx context.Context, ids []string) ([]*domain.Passage, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + passageColumns + ` FROM passages WHERE id = ANY($1)`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPassages(rows)
}

// ListByDocument retrieves a document's passages in position order
func (s *PassageStore) ListByDocument(ctx context.Context, documentID string) ([]*domain.Passage, error) {
	query := `SELECT ` + passageColumns + ` FROM passages WHERE document_id = $1 ORDER BY position ASC`

	rows, err := s.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPassages(rows)
}

// DeleteByDocument removes all passages of a document
func (s *PassageStore) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM passages WHERE document_id = $1`, documentID)
	return err
}

func scanPassages(rows *sql.Rows) ([]*domain.Passage, error) {
	var passages []*domain.Passage
	for rows.Next() {
		var p domain.Passage
		err := rows.Scan(
			&p.ID,
			&p.DocumentID,
			&p.ProjectID,
			&p.Interviewee,
			&p.Content,
			&p.Position,
			&p.StartChar,
			&p.EndChar,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		passages = append(passages, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return passages, nil
}
