package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driving"
)

// Ensure documentService implements DocumentService
var _ driving.DocumentService = (*documentService)(nil)

type documentService struct {
	documents driven.DocumentStore
	passages  driven.PassageStore
	projects  driven.ProjectStore
	index     driven.VectorIndex
	extractor driven.TextExtractor
	queue     driven.TaskQueue
	logger    *slog.Logger
}

// NewDocumentService creates a DocumentService.
func NewDocumentService(
	documents driven.DocumentStore,
	passages driven.PassageStore,
	projects driven.ProjectStore,
	index driven.VectorIndex,
	extractor driven.TextExtractor,
	queue driven.TaskQueue,
	logger *slog.Logger,
) driving.DocumentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &documentService{
		documents: documents,
		passages:  passages,
		projects:  projects,
		index:     index,
		extractor: extractor,
		queue:     queue,
		logger:    logger,
	}
}

// Upload extracts the file's text, persists the document in pending state
// and enqueues indexing and summary generation. The upload itself never
// waits on the embedding service.
func (s *documentService) Upload(ctx context.Context, projectID, name, interviewee string, file []byte) (*domain.Document, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: document name is required", domain.ErrInvalidInput)
	}
	if len(file) == 0 {
		return nil, fmt.Errorf("%w: file is empty", domain.ErrInvalidInput)
	}
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}

	text, err := s.extractor.Extract(name, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: file contains no text", domain.ErrInvalidInput)
	}

	now := time.Now()
	doc := &domain.Document{
		ID:            domain.NewID(),
		ProjectID:     projectID,
		Name:          name,
		Interviewee:   interviewee,
		Text:          text,
		IndexStatus:   domain.IndexStatusPending,
		SummaryStatus: domain.SummaryStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.documents.Save(ctx, doc); err != nil {
		return nil, err
	}

	if err := s.queue.Enqueue(ctx, domain.NewIndexTask(projectID, doc.ID)); err != nil {
		return nil, fmt.Errorf("enqueueing indexing: %w", err)
	}
	if err := s.queue.Enqueue(ctx, domain.NewSummarizeTask(projectID, doc.ID)); err != nil {
		// Indexing is already queued; the summary stays pending and can
		// be regenerated later.
		s.logger.Error("failed to enqueue summary task", "document_id", doc.ID, "error", err)
	}

	s.logger.Info("document uploaded",
		"document_id", doc.ID,
		"project_id", projectID,
		"name", name,
		"chars", len(text),
	)
	return doc, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.documents.Get(ctx, id)
}

func (s *documentService) GetWithPassages(ctx context.Context, id string) (*domain.DocumentWithPassages, error) {
	doc, err := s.documents.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	passages, err := s.passages.ListByDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.DocumentWithPassages{Document: doc, Passages: passages}, nil
}

func (s *documentService) List(ctx context.Context, projectID string) ([]*domain.Document, error) {
	return s.documents.ListByProject(ctx, projectID)
}

// Reindex re-enqueues indexing. Useful after the embedding service
// recovers from an outage that left documents failed.
func (s *documentService) Reindex(ctx context.Context, id string) error {
	doc, err := s.documents.Get(ctx, id)
	if err != nil {
		return err
	}
	if doc.IndexStatus == domain.IndexStatusIndexing {
		return domain.ErrIndexingInProgress
	}
	if err := s.documents.SetIndexStatus(ctx, doc.ID, domain.IndexStatusPending, "", ""); err != nil {
		return err
	}
	return s.queue.Enqueue(ctx, domain.NewIndexTask(doc.ProjectID, doc.ID))
}

// Delete removes the document, its passages and its vectors. Vector
// cleanup runs first so a partial failure cannot leave embeddings behind
// for a document the relational store no longer knows.
func (s *documentService) Delete(ctx context.Context, id string) error {
	doc, err := s.documents.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.index.DeleteByDocument(ctx, doc.ProjectID, doc.ID); err != nil {
		return fmt.Errorf("clearing vector index: %w", err)
	}
	if err := s.passages.DeleteByDocument(ctx, doc.ID); err != nil {
		return err
	}
	if err := s.documents.Delete(ctx, doc.ID); err != nil {
		return err
	}

	s.logger.Info("document deleted", "document_id", doc.ID, "project_id", doc.ProjectID)
	return nil
}
