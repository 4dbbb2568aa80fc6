package domain

import "time"

// AIProvider identifies the AI/embedding provider
type AIProvider string

const (
	AIProviderOpenAI AIProvider = "openai"
	AIProviderOllama AIProvider = "ollama"
)

// AnswerLength is the user-facing knob for generated answer size.
type AnswerLength string

const (
	AnswerLengthShort  AnswerLength = "short"
	AnswerLengthMedium AnswerLength = "medium"
	AnswerLengthLong   AnswerLength = "long"
)

// Tokens maps the length label to a max-token budget for generation.
func (l AnswerLength) Tokens() int {
	switch l {
	case AnswerLengthShort:
		return 256
	case AnswerLengthLong:
		return 1024
	default:
		return 512
	}
}

// IsValid reports whether l is a known length label.
func (l AnswerLength) IsValid() bool {
	switch l {
	case AnswerLengthShort, AnswerLengthMedium, AnswerLengthLong:
		return true
	}
	return false
}

// GenerationSettings configure a single LLM call. They are threaded
// explicitly through every call of the pipeline.
type GenerationSettings struct {
	Model        string       `json:"model"`
	Temperature  float32      `json:"temperature"`
	AnswerLength AnswerLength `json:"answer_length"`
}

// Normalize fills unset fields from defaults and clamps temperature
// into the valid sampling range.
func (g GenerationSettings) Normalize(defaults GenerationSettings) GenerationSettings {
	if g.Model == "" {
		g.Model = defaults.Model
	}
	if g.Temperature <= 0 {
		g.Temperature = defaults.Temperature
	}
	if g.Temperature > 2.0 {
		g.Temperature = 2.0
	}
	if !g.AnswerLength.IsValid() {
		g.AnswerLength = defaults.AnswerLength
	}
	return g
}

// UserSettings holds a user's stored generation preferences plus the
// embedding configuration shared by indexing and querying.
type UserSettings struct {
	UserID         string             `json:"user_id"`
	Generation     GenerationSettings `json:"generation"`
	EmbeddingModel string             `json:"embedding_model"`
	TopK           int                `json:"top_k"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// DefaultUserSettings returns sensible defaults for a new user.
func DefaultUserSettings(userID string) *UserSettings {
	return &UserSettings{
		UserID: userID,
		Generation: GenerationSettings{
			Model:        "gpt-4o-mini",
			Temperature:  0.5,
			AnswerLength: AnswerLengthMedium,
		},
		EmbeddingModel: "text-embedding-3-small",
		TopK:           DefaultTopK,
		UpdatedAt:      time.Now(),
	}
}

// Validate checks stored settings before persisting.
func (s *UserSettings) Validate() error {
	if s.UserID == "" {
		return ErrInvalidInput
	}
	if s.Generation.Temperature < 0 || s.Generation.Temperature > 2.0 {
		return ErrInvalidInput
	}
	if s.Generation.AnswerLength != "" && !s.Generation.AnswerLength.IsValid() {
		return ErrInvalidInput
	}
	if s.TopK < 0 || s.TopK > 50 {
		return ErrInvalidInput
	}
	return nil
}
