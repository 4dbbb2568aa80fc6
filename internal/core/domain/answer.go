package domain

// Strategy is the closed set of answer strategies. The selector coerces
// every classification output to one of these; anything unparseable falls
// back to StrategyLookup.
type Strategy string

const (
	// StrategyLookup answers with a single retrieval and synthesis pass.
	StrategyLookup Strategy = "lookup"

	// StrategyCompare retrieves and summarizes per interviewee, then
	// synthesizes a comparison from the sub-answers.
	StrategyCompare Strategy = "compare"

	// StrategyQuotes extracts verbatim passages that answer the question.
	StrategyQuotes Strategy = "quotes"
)

// Strategies lists all known strategies, used for coercing classifier
// output by closest match.
func Strategies() []Strategy {
	return []Strategy{StrategyLookup, StrategyCompare, StrategyQuotes}
}

// IsValid reports whether s is a known strategy.
func (s Strategy) IsValid() bool {
	switch s {
	case StrategyLookup, StrategyCompare, StrategyQuotes:
		return true
	}
	return false
}

// AskRequest is the single entry point of the answer pipeline.
type AskRequest struct {
	ProjectID string `json:"project_id"`
	ChatID    string `json:"chat_id"`
	Query     string `json:"query"`

	// DocumentIDs optionally restricts retrieval to selected documents.
	DocumentIDs []string `json:"document_ids,omitempty"`

	// Settings are passed explicitly per call, never read from ambient
	// state. Zero value means the caller's stored defaults.
	Settings GenerationSettings `json:"settings"`
}

// Validate checks required ask fields.
func (r *AskRequest) Validate() error {
	if r.ProjectID == "" || r.ChatID == "" || r.Query == "" {
		return ErrInvalidInput
	}
	return nil
}

// AskResponse is the composed answer with its provenance.
type AskResponse struct {
	Answer    string   `json:"answer"`
	Citations []string `json:"citations"` // passage ids actually referenced
	Strategy  Strategy `json:"strategy"`
	Message   *Message `json:"message,omitempty"` // persisted assistant turn
}

// NoContextAnswer is returned when the retrieval scope holds no indexed
// passages. The pipeline must answer with this instead of hallucinating
// or raising a GenerationError.
const NoContextAnswer = "I could not find relevant context in the selected documents. " +
	"Please upload documents or adjust your selection and try again."
