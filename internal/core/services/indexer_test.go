package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/qwizz-labs/qwizz-core/internal/chunker"
	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven/mocks"
)

type indexerFixture struct {
	documents *mocks.MockDocumentStore
	passages  *mocks.MockPassageStore
	embedder  *mocks.MockEmbeddingService
	index     *mocks.MockVectorIndex
	indexer   *Indexer
}

func newIndexerFixture() *indexerFixture {
	f := &indexerFixture{
		documents: mocks.NewMockDocumentStore(),
		passages:  mocks.NewMockPassageStore(),
		embedder:  mocks.NewMockEmbeddingService(),
		index:     mocks.NewMockVectorIndex(),
	}
	f.indexer = NewIndexer(f.documents, f.passages, f.embedder, f.index,
		chunker.New(chunker.Config{TargetSize: 80, OverlapChars: 0}), nil)
	return f
}

func (f *indexerFixture) seedPending(t *testing.T, id, text string) {
	t.Helper()
	err := f.documents.Save(context.Background(), &domain.Document{
		ID:          id,
		ProjectID:   "proj-1",
		Name:        id + ".txt",
		Interviewee: "Alice",
		Text:        text,
		IndexStatus: domain.IndexStatusPending,
	})
	if err != nil {
		t.Fatalf("seeding document: %v", err)
	}
}

const transcript = "The first topic was budgets. Costs rose sharply last year. " +
	"The second topic was hiring. The team doubled in size. " +
	"Finally they talked about remote work. Most prefer hybrid setups."

func TestIndexer_Index_Success(t *testing.T) {
	f := newIndexerFixture()
	f.seedPending(t, "doc-1", transcript)

	if err := f.indexer.Index(context.Background(), "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc, _ := f.documents.Get(context.Background(), "doc-1")
	if doc.IndexStatus != domain.IndexStatusCompleted {
		t.Errorf("status = %s, want completed", doc.IndexStatus)
	}
	if doc.EmbeddingModel != f.embedder.Model() {
		t.Errorf("embedding model = %q, want %q", doc.EmbeddingModel, f.embedder.Model())
	}
	if doc.IndexError != "" {
		t.Errorf("index error should be empty, got %q", doc.IndexError)
	}

	// Passages and vectors agree.
	stored, _ := f.passages.ListByDocument(context.Background(), "doc-1")
	if len(stored) == 0 {
		t.Fatal("expected stored passages")
	}
	if f.index.Count() != len(stored) {
		t.Errorf("index holds %d vectors, store holds %d passages", f.index.Count(), len(stored))
	}
	for i, p := range stored {
		if p.Position != i {
			t.Errorf("passage %d has position %d", i, p.Position)
		}
		if !f.index.Has(p.ID) {
			t.Errorf("passage %s has no vector", p.ID)
		}
	}
}

func TestIndexer_Index_EmbeddingFailureRollsBack(t *testing.T) {
	f := newIndexerFixture()
	f.seedPending(t, "doc-1", transcript)
	f.embedder.SetFailAlways(errors.New("embedding service down"))

	err := f.indexer.Index(context.Background(), "doc-1")
	var embErr *domain.EmbeddingServiceError
	if !errors.As(err, &embErr) {
		t.Fatalf("expected EmbeddingServiceError, got %v", err)
	}

	doc, _ := f.documents.Get(context.Background(), "doc-1")
	if doc.IndexStatus != domain.IndexStatusFailed {
		t.Errorf("status = %s, want failed", doc.IndexStatus)
	}
	if !strings.Contains(doc.IndexError, "embedding service") {
		t.Errorf("index error = %q, want the cause recorded", doc.IndexError)
	}

	// All-or-nothing: nothing retrievable survives the failure.
	if f.passages.Count() != 0 {
		t.Errorf("expected no stored passages, got %d", f.passages.Count())
	}
	if f.index.Count() != 0 {
		t.Errorf("expected no vectors, got %d", f.index.Count())
	}
}

func TestIndexer_Index_FailedDocumentRecoversOnReindex(t *testing.T) {
	f := newIndexerFixture()
	f.seedPending(t, "doc-1", transcript)

	f.embedder.SetFailAlways(errors.New("outage"))
	if err := f.indexer.Index(context.Background(), "doc-1"); err == nil {
		t.Fatal("expected first indexing run to fail")
	}

	f.embedder.SetFailAlways(nil)
	if err := f.indexer.Index(context.Background(), "doc-1"); err != nil {
		t.Fatalf("re-index after recovery failed: %v", err)
	}

	doc, _ := f.documents.Get(context.Background(), "doc-1")
	if doc.IndexStatus != domain.IndexStatusCompleted {
		t.Errorf("status = %s, want completed", doc.IndexStatus)
	}
	stored, _ := f.passages.ListByDocument(context.Background(), "doc-1")
	if len(stored) == 0 || f.index.Count() != len(stored) {
		t.Errorf("re-index left %d passages and %d vectors", len(stored), f.index.Count())
	}
}

func TestIndexer_Index_ReindexReplacesPassages(t *testing.T) {
	f := newIndexerFixture()
	f.seedPending(t, "doc-1", transcript)

	if err := f.indexer.Index(context.Background(), "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, _ := f.passages.ListByDocument(context.Background(), "doc-1")

	if err := f.indexer.Index(context.Background(), "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := f.passages.ListByDocument(context.Background(), "doc-1")

	if len(first) != len(second) {
		t.Fatalf("re-index changed passage count: %d vs %d", len(first), len(second))
	}
	// Embeddings are immutable: a re-embed means new passage ids.
	for i := range first {
		if first[i].ID == second[i].ID {
			t.Errorf("passage %d kept its id across re-index", i)
		}
	}
	if f.index.Count() != len(second) {
		t.Errorf("index holds %d vectors, want %d", f.index.Count(), len(second))
	}
}

func TestIndexer_Index_ConcurrentGuard(t *testing.T) {
	f := newIndexerFixture()
	f.seedPending(t, "doc-1", transcript)
	_ = f.documents.SetIndexStatus(context.Background(), "doc-1", domain.IndexStatusIndexing, "", "")

	err := f.indexer.Index(context.Background(), "doc-1")
	if !errors.Is(err, domain.ErrIndexingInProgress) {
		t.Fatalf("expected ErrIndexingInProgress, got %v", err)
	}
}

func TestIndexer_Index_UnknownDocument(t *testing.T) {
	f := newIndexerFixture()
	err := f.indexer.Index(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
