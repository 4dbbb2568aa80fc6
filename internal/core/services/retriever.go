package services

import (
	"context"
	"log/slog"
	"sort"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
)

// Retriever answers similarity queries over a project's indexed passages.
// Failed or pending documents never contribute results; retrieval over an
// empty scope returns an empty slice, not an error.
type Retriever struct {
	documents driven.DocumentStore
	passages  driven.PassageStore
	embedder  driven.EmbeddingService
	index     driven.VectorIndex
	logger    *slog.Logger
}

// NewRetriever creates a Retriever.
func NewRetriever(
	documents driven.DocumentStore,
	passages driven.PassageStore,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	logger *slog.Logger,
) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{
		documents: documents,
		passages:  passages,
		embedder:  embedder,
		index:     index,
		logger:    logger,
	}
}

// Retrieve returns the top-k passages for the query within scope, highest
// similarity first. Ties are broken by passage insertion order so results
// are deterministic for a fixed index and model.
func (r *Retriever) Retrieve(ctx context.Context, query string, scope domain.RetrievalScope, k int) ([]*domain.RankedPassage, error) {
	if k <= 0 {
		k = domain.DefaultTopK
	}

	// Resolve the retrievable documents for the scope. Documents that
	// are pending, indexing or failed are excluded here, so a
	// half-indexed or failed document is never observable to readers.
	docIDs, err := r.retrievableDocuments(ctx, scope)
	if err != nil {
		return nil, err
	}
	if len(docIDs) == 0 {
		return nil, nil
	}
	scope.DocumentIDs = docIDs

	var vector []float32
	err = withRetry(ctx, retryAttempts, retryDelay, func() error {
		var embedErr error
		vector, embedErr = r.embedder.EmbedQuery(ctx, query)
		return embedErr
	})
	if err != nil {
		return nil, &domain.EmbeddingServiceError{Err: err}
	}

	var matches []driven.VectorMatch
	err = withRetry(ctx, retryAttempts, retryDelay, func() error {
		var queryErr error
		matches, queryErr = r.index.Query(ctx, vector, scope, k)
		return queryErr
	})
	if err != nil {
		return nil, &domain.VectorIndexError{Op: "query", Err: err}
	}
	if len(matches) == 0 {
		return nil, nil
	}

	// Deterministic ordering: similarity descending, then insertion
	// order, then id.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].Position != matches[j].Position {
			return matches[i].Position < matches[j].Position
		}
		return matches[i].PassageID < matches[j].PassageID
	})
	if len(matches) > k {
		matches = matches[:k]
	}

	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.PassageID
	}
	loaded, err := r.passages.GetBatch(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Passage, len(loaded))
	for _, p := range loaded {
		byID[p.ID] = p
	}

	ranked := make([]*domain.RankedPassage, 0, len(matches))
	for _, m := range matches {
		p, ok := byID[m.PassageID]
		if !ok {
			// Vector index is eventually consistent with the store;
			// a dangling hit is skipped, not fatal.
			r.logger.Warn("vector match without stored passage", "passage_id", m.PassageID)
			continue
		}
		ranked = append(ranked, &domain.RankedPassage{Passage: p, Score: m.Score})
	}

	return ranked, nil
}

// Interviewees returns the distinct interviewee labels with retrievable
// passages in the project, optionally restricted to selected documents.
func (r *Retriever) Interviewees(ctx context.Context, projectID string, documentIDs []string) ([]string, error) {
	docs, err := r.documents.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	selected := make(map[string]bool, len(documentIDs))
	for _, id := range documentIDs {
		selected[id] = true
	}

	seen := make(map[string]bool)
	var labels []string
	for _, d := range docs {
		if !d.Retrievable() || d.Interviewee == "" {
			continue
		}
		if len(documentIDs) > 0 && !selected[d.ID] {
			continue
		}
		if !seen[d.Interviewee] {
			seen[d.Interviewee] = true
			labels = append(labels, d.Interviewee)
		}
	}
	return labels, nil
}

func (r *Retriever) retrievableDocuments(ctx context.Context, scope domain.RetrievalScope) ([]string, error) {
	docs, err := r.documents.ListByProject(ctx, scope.ProjectID)
	if err != nil {
		return nil, err
	}

	selected := make(map[string]bool, len(scope.DocumentIDs))
	for _, id := range scope.DocumentIDs {
		selected[id] = true
	}

	var ids []string
	for _, d := range docs {
		if !d.Retrievable() {
			continue
		}
		if len(scope.DocumentIDs) > 0 && !selected[d.ID] {
			continue
		}
		if scope.Interviewee != "" && d.Interviewee != scope.Interviewee {
			continue
		}
		ids = append(ids, d.ID)
	}
	return ids, nil
}
