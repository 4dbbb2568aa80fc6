package domain

import "time"

// IndexStatus tracks the vector-index lifecycle of a document.
// The relational store is authoritative for existence; the vector index
// only ever holds passages of documents in IndexStatusCompleted.
type IndexStatus string

const (
	IndexStatusPending   IndexStatus = "pending"
	IndexStatusIndexing  IndexStatus = "indexing"
	IndexStatusCompleted IndexStatus = "completed"
	IndexStatusFailed    IndexStatus = "failed"
)

// SummaryStatus tracks background summary generation for a document.
type SummaryStatus string

const (
	SummaryStatusPending   SummaryStatus = "pending"
	SummaryStatusCompleted SummaryStatus = "completed"
	SummaryStatusError     SummaryStatus = "error"
)

// Document represents an uploaded interview transcript.
type Document struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	Name        string `json:"name"`
	Interviewee string `json:"interviewee,omitempty"`
	Text        string `json:"-"` // raw extracted text, not serialized in listings

	IndexStatus IndexStatus `json:"index_status"`
	IndexError  string      `json:"index_error,omitempty"`
	// EmbeddingModel records which model produced the stored vectors.
	// Query embeddings must come from the same model or similarity
	// scores are meaningless.
	EmbeddingModel string `json:"embedding_model,omitempty"`

	Summary       string        `json:"summary,omitempty"`
	SummaryStatus SummaryStatus `json:"summary_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Retrievable reports whether the document's passages may appear in
// retrieval results.
func (d *Document) Retrievable() bool {
	return d.IndexStatus == IndexStatusCompleted
}

// Passage is a chunk of a document small enough to embed and retrieve
// individually. The embedding vector is owned by the vector index, not
// the relational store, and is immutable once written.
type Passage struct {
	ID          string    `json:"id"`
	DocumentID  string    `json:"document_id"`
	ProjectID   string    `json:"project_id"`
	Interviewee string    `json:"interviewee,omitempty"`
	Content     string    `json:"content"`
	Position    int       `json:"position"` // insertion order within document
	StartChar   int       `json:"start_char"`
	EndChar     int       `json:"end_char"`
	CreatedAt   time.Time `json:"created_at"`
}

// DocumentWithPassages combines a document with its ordered passages.
type DocumentWithPassages struct {
	Document *Document  `json:"document"`
	Passages []*Passage `json:"passages"`
}
