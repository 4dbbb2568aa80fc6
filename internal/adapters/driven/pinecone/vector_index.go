package pinecone

import (
	"context"
	"fmt"
	"sync"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.VectorIndex = (*Index)(nil)

// upsertBatchSize caps vectors per upsert request per Pinecone limits
const upsertBatchSize = 100

// Index implements driven.VectorIndex on a Pinecone index. Passage metadata
// (project, document, interviewee) is stored alongside each vector so
// retrieval and deletion can filter server-side.
type Index struct {
	client    *Client
	indexName string
	namespace string

	mu   sync.Mutex
	host string
}

// NewIndex creates a VectorIndex backed by the named Pinecone index.
// The data-plane host is resolved lazily on first use.
func NewIndex(client *Client, indexName, namespace string) (*Index, error) {
	if client == nil {
		return nil, fmt.Errorf("pinecone client is required")
	}
	if indexName == "" {
		return nil, fmt.Errorf("pinecone index name is required")
	}
	return &Index{
		client:    client,
		indexName: indexName,
		namespace: namespace,
	}, nil
}

// Upsert writes passage vectors in batches
func (i *Index) Upsert(ctx context.Context, vectors []driven.PassageVector) error {
	if len(vectors) == 0 {
		return nil
	}

	host, err := i.resolveHost(ctx)
	if err != nil {
		return &domain.VectorIndexError{Op: "upsert", Err: err}
	}

	for start := 0; start < len(vectors); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(vectors) {
			end = len(vectors)
		}

		batch := make([]Vector, 0, end-start)
		for _, v := range vectors[start:end] {
			batch = append(batch, Vector{
				ID:     v.PassageID,
				Values: v.Values,
				Metadata: map[string]any{
					"project_id":  v.ProjectID,
					"document_id": v.DocumentID,
					"interviewee": v.Interviewee,
					"position":    v.Position,
				},
			})
		}

		_, err := i.client.UpsertVectors(ctx, host, UpsertRequest{
			Vectors:   batch,
			Namespace: i.namespace,
		})
		if err != nil {
			return &domain.VectorIndexError{Op: "upsert", Err: err}
		}
	}

	return nil
}

// Query returns the top-k matches for the scope, highest score first
func (i *Index) Query(ctx context.Context, vector []float32, scope domain.RetrievalScope, k int) ([]driven.VectorMatch, error) {
	host, err := i.resolveHost(ctx)
	if err != nil {
		return nil, &domain.VectorIndexError{Op: "query", Err: err}
	}

	resp, err := i.client.QueryVectors(ctx, host, QueryRequest{
		Namespace:       i.namespace,
		Vector:          vector,
		TopK:            k,
		Filter:          scopeFilter(scope),
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, &domain.VectorIndexError{Op: "query", Err: err}
	}

	matches := make([]driven.VectorMatch, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		match := driven.VectorMatch{
			PassageID: m.ID,
			Score:     m.Score,
		}
		if pos, ok := m.Metadata["position"].(float64); ok {
			match.Position = int(pos)
		}
		matches = append(matches, match)
	}

	return matches, nil
}

// DeleteByDocument removes all vectors of one document
func (i *Index) DeleteByDocument(ctx context.Context, projectID, documentID string) error {
	host, err := i.resolveHost(ctx)
	if err != nil {
		return &domain.VectorIndexError{Op: "delete", Err: err}
	}

	err = i.client.DeleteVectors(ctx, host, DeleteRequest{
		Namespace: i.namespace,
		Filter: map[string]any{
			"project_id":  map[string]any{"$eq": projectID},
			"document_id": map[string]any{"$eq": documentID},
		},
	})
	if err != nil {
		return &domain.VectorIndexError{Op: "delete", Err: err}
	}
	return nil
}

// DeleteByProject removes all vectors of a project
func (i *Index) DeleteByProject(ctx context.Context, projectID string) error {
	host, err := i.resolveHost(ctx)
	if err != nil {
		return &domain.VectorIndexError{Op: "delete", Err: err}
	}

	err = i.client.DeleteVectors(ctx, host, DeleteRequest{
		Namespace: i.namespace,
		Filter: map[string]any{
			"project_id": map[string]any{"$eq": projectID},
		},
	})
	if err != nil {
		return &domain.VectorIndexError{Op: "delete", Err: err}
	}
	return nil
}

// HealthCheck verifies the index is reachable and ready
func (i *Index) HealthCheck(ctx context.Context) error {
	desc, err := i.client.DescribeIndex(ctx, i.indexName)
	if err != nil {
		return err
	}
	if !desc.Status.Ready {
		return fmt.Errorf("pinecone index %s not ready (state %s)", i.indexName, desc.Status.State)
	}
	return nil
}

func (i *Index) resolveHost(ctx context.Context) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.host != "" {
		return i.host, nil
	}

	desc, err := i.client.DescribeIndex(ctx, i.indexName)
	if err != nil {
		return "", err
	}

	i.host = desc.Host
	return i.host, nil
}

// scopeFilter builds the Pinecone metadata filter for a retrieval scope
func scopeFilter(scope domain.RetrievalScope) map[string]any {
	filter := map[string]any{
		"project_id": map[string]any{"$eq": scope.ProjectID},
	}
	if len(scope.DocumentIDs) > 0 {
		filter["document_id"] = map[string]any{"$in": scope.DocumentIDs}
	}
	if scope.Interviewee != "" {
		filter["interviewee"] = map[string]any{"$eq": scope.Interviewee}
	}
	return filter
}
