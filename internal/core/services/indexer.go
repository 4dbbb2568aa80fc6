package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/qwizz-labs/qwizz-core/internal/chunker"
	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
)

// Indexer splits a document into passages, embeds them and upserts the
// vectors. Indexing is all-or-nothing per document: on partial failure
// the already-upserted vectors are rolled back and the document is marked
// failed, so readers never observe a half-indexed document.
type Indexer struct {
	documents driven.DocumentStore
	passages  driven.PassageStore
	embedder  driven.EmbeddingService
	index     driven.VectorIndex
	splitter  *chunker.Chunker
	logger    *slog.Logger

	// embedBatch bounds how many passages go to the embedding service
	// per call.
	embedBatch int
}

// NewIndexer creates an Indexer.
func NewIndexer(
	documents driven.DocumentStore,
	passages driven.PassageStore,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	splitter *chunker.Chunker,
	logger *slog.Logger,
) *Indexer {
	if logger == nil {
		logger = slog.Default()
	}
	if splitter == nil {
		splitter = chunker.New(chunker.DefaultConfig())
	}
	return &Indexer{
		documents:  documents,
		passages:   passages,
		embedder:   embedder,
		index:      index,
		splitter:   splitter,
		logger:     logger,
		embedBatch: 100,
	}
}

// Index processes one document end to end. Re-running after a failure
// re-chunks and re-embeds from scratch.
func (ix *Indexer) Index(ctx context.Context, documentID string) error {
	doc, err := ix.documents.Get(ctx, documentID)
	if err != nil {
		return err
	}
	if doc.IndexStatus == domain.IndexStatusIndexing {
		return domain.ErrIndexingInProgress
	}

	if err := ix.documents.SetIndexStatus(ctx, doc.ID, domain.IndexStatusIndexing, "", ""); err != nil {
		return err
	}

	if err := ix.run(ctx, doc); err != nil {
		ix.rollback(ctx, doc)
		if setErr := ix.documents.SetIndexStatus(ctx, doc.ID, domain.IndexStatusFailed, err.Error(), ""); setErr != nil {
			ix.logger.Error("failed to record indexing failure", "document_id", doc.ID, "error", setErr)
		}
		return err
	}

	return ix.documents.SetIndexStatus(ctx, doc.ID, domain.IndexStatusCompleted, "", ix.embedder.Model())
}

func (ix *Indexer) run(ctx context.Context, doc *domain.Document) error {
	// Re-indexing replaces everything; embeddings are immutable, so a
	// re-embed means new passages, never mutated ones.
	if err := ix.passages.DeleteByDocument(ctx, doc.ID); err != nil {
		return err
	}
	if err := ix.index.DeleteByDocument(ctx, doc.ProjectID, doc.ID); err != nil {
		return &domain.VectorIndexError{Op: "delete", Err: err}
	}

	spans := ix.splitter.Split(doc.Text)
	if len(spans) == 0 {
		ix.logger.Warn("document yielded no passages", "document_id", doc.ID)
		return nil
	}

	now := time.Now()
	passages := make([]*domain.Passage, len(spans))
	texts := make([]string, len(spans))
	for i, span := range spans {
		passages[i] = &domain.Passage{
			ID:          domain.NewID(),
			DocumentID:  doc.ID,
			ProjectID:   doc.ProjectID,
			Interviewee: doc.Interviewee,
			Content:     span.Content,
			Position:    span.Position,
			StartChar:   span.StartChar,
			EndChar:     span.EndChar,
			CreatedAt:   now,
		}
		texts[i] = span.Content
	}

	for start := 0; start < len(passages); start += ix.embedBatch {
		end := start + ix.embedBatch
		if end > len(passages) {
			end = len(passages)
		}

		var embeddings [][]float32
		err := withRetry(ctx, retryAttempts, retryDelay, func() error {
			var embedErr error
			embeddings, embedErr = ix.embedder.Embed(ctx, texts[start:end])
			return embedErr
		})
		if err != nil {
			return &domain.EmbeddingServiceError{Err: err}
		}
		if len(embeddings) != end-start {
			return &domain.EmbeddingServiceError{Err: domain.ErrServiceUnavailable}
		}

		vectors := make([]driven.PassageVector, end-start)
		for i, p := range passages[start:end] {
			vectors[i] = driven.PassageVector{
				PassageID:   p.ID,
				DocumentID:  p.DocumentID,
				ProjectID:   p.ProjectID,
				Interviewee: p.Interviewee,
				Position:    p.Position,
				Values:      embeddings[i],
			}
		}
		err = withRetry(ctx, retryAttempts, retryDelay, func() error {
			return ix.index.Upsert(ctx, vectors)
		})
		if err != nil {
			return &domain.VectorIndexError{Op: "upsert", Err: err}
		}
	}

	if err := ix.passages.SaveBatch(ctx, passages); err != nil {
		return err
	}

	ix.logger.Info("document indexed",
		"document_id", doc.ID,
		"project_id", doc.ProjectID,
		"passages", len(passages),
		"model", ix.embedder.Model(),
	)
	return nil
}

// rollback removes whatever this run already wrote so a failed document
// holds no retrievable state. Rollback errors are logged, not returned;
// the failed status excludes the document from retrieval either way.
func (ix *Indexer) rollback(ctx context.Context, doc *domain.Document) {
	if err := ix.index.DeleteByDocument(ctx, doc.ProjectID, doc.ID); err != nil {
		ix.logger.Error("rollback: vector delete failed", "document_id", doc.ID, "error", err)
	}
	if err := ix.passages.DeleteByDocument(ctx, doc.ID); err != nil {
		ix.logger.Error("rollback: passage delete failed", "document_id", doc.ID, "error", err)
	}
}
