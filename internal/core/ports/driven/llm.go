package driven

import (
	"context"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
)

// LLMService generates text from prompts. Parameters are passed per call;
// implementations hold no per-user state.
type LLMService interface {
	// Generate produces text for the given prompt.
	Generate(ctx context.Context, prompt string, settings domain.GenerationSettings) (string, error)

	// Model returns the default model name being used
	Model() string

	// Ping verifies the LLM service is available
	Ping(ctx context.Context) error

	// Close releases resources held by the LLM service
	Close() error
}
