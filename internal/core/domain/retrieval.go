package domain

// RetrievalScope restricts a similarity search. ProjectID is mandatory;
// DocumentIDs and Interviewee narrow the scope further.
type RetrievalScope struct {
	ProjectID   string   `json:"project_id"`
	DocumentIDs []string `json:"document_ids,omitempty"`
	Interviewee string   `json:"interviewee,omitempty"`
}

// RankedPassage is a retrieval result with its similarity score.
type RankedPassage struct {
	Passage *Passage `json:"passage"`
	Score   float64  `json:"score"`
}

// DefaultTopK is the default number of passages returned per retrieval.
const DefaultTopK = 5
