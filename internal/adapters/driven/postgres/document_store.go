package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements driven.DocumentStore using PostgreSQL
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

const documentColumns = `id, project_id, name, interviewee, text, index_status, index_error, embedding_model, summary, summary_status, created_at, updated_at`

// Save creates or updates a document
func (s *DocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			interviewee = EXCLUDED.interviewee,
			text = EXCLUDED.text,
			index_status = EXCLUDED.index_status,
			index_error = EXCLUDED.index_error,
			embedding_model = EXCLUDED.embedding_model,
			summary = EXCLUDED.summary,
			summary_status = EXCLUDED.summary_status,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		doc.ID,
		doc.ProjectID,
		doc.Name,
		doc.Interviewee,
		doc.Text,
		string(doc.IndexStatus),
		doc.IndexError,
		doc.EmbeddingModel,
		doc.Summary,
		string(doc.SummaryStatus),
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return err
}

// Get retrieves a document by ID
func (s *DocumentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	var doc domain.Document
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&doc.ID,
		&doc.ProjectID,
		&doc.Name,
		&doc.Interviewee,
		&doc.Text,
		&doc.IndexStatus,
		&doc.IndexError,
		&doc.EmbeddingModel,
		&doc.Summary,
		&doc.SummaryStatus,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// ListByProject retrieves all documents of a project in upload order
func (s *DocumentStore) ListByProject(ctx context.Context, projectID string) ([]*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE project_id = $1 ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		var doc domain.Document
		err := rows.Scan(
			&doc.ID,
			&doc.ProjectID,
			&doc.Name,
			&doc.Interviewee,
			&doc.Text,
			&doc.IndexStatus,
			&doc.IndexError,
			&doc.EmbeddingModel,
			&doc.Summary,
			&doc.SummaryStatus,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}

// ListInterviewees returns the distinct interviewee labels of retrievable
// documents in a project, in insertion order
func (s *DocumentStore) ListInterviewees(ctx context.Context, projectID string) ([]string, error) {
	query := `
		SELECT interviewee
		FROM documents
		WHERE project_id = $1 AND index_status = $2 AND interviewee <> ''
		GROUP BY interviewee
		ORDER BY MIN(created_at) ASC
	`

	rows, err := s.db.QueryContext(ctx, query, projectID, string(domain.IndexStatusCompleted))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviewees []string
	for rows.Next() {
		var interviewee string
		if err := rows.Scan(&interviewee); err != nil {
			return nil, err
		}
		interviewees = append(interviewees, interviewee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return interviewees, nil
}

// SetIndexStatus updates the index lifecycle fields
func (s *DocumentStore) SetIndexStatus(ctx context.Context, id string, status domain.IndexStatus, indexError, embeddingModel string) error {
	query := `
		UPDATE documents
		SET index_status = $1, index_error = $2, embedding_model = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(ctx, query, string(status), indexError, embeddingModel, time.Now(), id)
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

// SetSummary stores the generated summary and its status
func (s *DocumentStore) SetSummary(ctx context.Context, id string, summary string, status domain.SummaryStatus) error {
	query := `
		UPDATE documents
		SET summary = $1, summary_status = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(ctx, query, summary, string(status), time.Now(), id)
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

// Delete deletes a document; passages cascade via foreign key
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
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
