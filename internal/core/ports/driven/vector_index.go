package driven

import (
	"context"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
)

// PassageVector pairs a passage's embedding with the metadata needed for
// filtered retrieval.
type PassageVector struct {
	PassageID   string
	DocumentID  string
	ProjectID   string
	Interviewee string
	Position    int
	Values      []float32
}

// VectorMatch is a raw nearest-neighbor hit.
type VectorMatch struct {
	PassageID string
	Score     float64
	Position  int
}

// VectorIndex is the hosted nearest-neighbor search service. Entries are a
// derived, eventually-consistent projection of passages; the relational
// store stays authoritative for existence.
type VectorIndex interface {
	// Upsert writes passage vectors. Upserts are atomic per entry.
	Upsert(ctx context.Context, vectors []PassageVector) error

	// Query returns the top-k matches for the scope, highest score first.
	Query(ctx context.Context, vector []float32, scope domain.RetrievalScope, k int) ([]VectorMatch, error)

	// DeleteByDocument removes all vectors of one document.
	DeleteByDocument(ctx context.Context, projectID, documentID string) error

	// DeleteByProject removes all vectors of a project. Used on cascade
	// delete so no orphaned embeddings survive.
	DeleteByProject(ctx context.Context, projectID string) error

	// HealthCheck verifies the index is reachable.
	HealthCheck(ctx context.Context) error
}
