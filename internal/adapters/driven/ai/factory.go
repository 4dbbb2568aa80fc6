package ai

import (
	"fmt"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
)

// Config holds provider selection and credentials for the AI services
type Config struct {
	Provider domain.AIProvider

	// APIKey authenticates against hosted providers. Unused for Ollama.
	APIKey string

	// BaseURL overrides the provider endpoint. Required for Ollama,
	// optional for OpenAI (proxies, compatible servers).
	BaseURL string

	// EmbeddingModel is the embedding model name
	EmbeddingModel string

	// Model is the default generation model name
	Model string
}

// NewEmbeddingService creates an embedding service for the configured provider
func NewEmbeddingService(cfg Config) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case domain.AIProviderOpenAI:
		return NewOpenAIEmbedding(cfg.APIKey, cfg.EmbeddingModel, cfg.BaseURL)
	case domain.AIProviderOllama:
		return NewOllamaEmbedding(cfg.BaseURL, cfg.EmbeddingModel)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, cfg.Provider)
	}
}

// NewLLMService creates an LLM service for the configured provider
func NewLLMService(cfg Config) (driven.LLMService, error) {
	switch cfg.Provider {
	case domain.AIProviderOpenAI:
		return NewOpenAILLM(cfg.APIKey, cfg.Model, cfg.BaseURL)
	case domain.AIProviderOllama:
		return NewOllamaLLM(cfg.BaseURL, cfg.Model)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, cfg.Provider)
	}
}
