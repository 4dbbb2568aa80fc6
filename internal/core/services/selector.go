package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
)

// Selector classifies a query into one of the closed set of answer
// strategies with a single LLM call. Output that cannot be coerced to a
// known label falls back to lookup instead of failing the request.
type Selector struct {
	llm    driven.LLMService
	logger *slog.Logger
}

// NewSelector creates a Selector.
func NewSelector(llm driven.LLMService, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{llm: llm, logger: logger}
}

const classifyPrompt = `Given a user's question and the conversation history, determine the intent
of the current question from the following predefined categories: "lookup",
"compare", or "quotes". Respond with exactly one category name.

lookup:
general questions about the content of the interview documents,
e.g.: "What did he say about X?", "Who is X?", "What does X do?",
"Summarize the key points...", "What is important about X?".

compare:
questions that contrast the statements or characteristics of different
interviewees, e.g.: "Compare what A and B said about X", "What do they
think about X?", "What is the difference between the interviewees on X?".

quotes:
questions that seek verbatim text passages from the interview documents,
e.g.: "Show me the text passages that contain the answer", "Quote the
source", "Show me the source of the answer".

Conversation:
%HISTORY%

Question: %QUERY%
Answer:`

// Select classifies the query. An LLM transport failure after retries
// surfaces as a GenerationError with the classification phase; output
// that parses to no known label is coerced to lookup.
func (s *Selector) Select(ctx context.Context, query, history string, settings domain.GenerationSettings) (domain.Strategy, error) {
	prompt := strings.NewReplacer(
		"%HISTORY%", history,
		"%QUERY%", query,
	).Replace(classifyPrompt)

	// Classification wants short, stable output regardless of the
	// user's creativity settings.
	settings.Temperature = 0.0
	settings.AnswerLength = domain.AnswerLengthShort

	var raw string
	err := withRetry(ctx, retryAttempts, retryDelay, func() error {
		var genErr error
		raw, genErr = s.llm.Generate(ctx, prompt, settings)
		return genErr
	})
	if err != nil {
		return "", domain.NewGenerationError(domain.PhaseClassification, err)
	}

	strategy := coerceStrategy(raw)
	s.logger.Debug("strategy selected", "raw", raw, "strategy", strategy)
	return strategy, nil
}

// coerceStrategy maps raw classifier output onto the closed strategy set.
// Exact and substring matches win; otherwise the closest label by edit
// distance is taken, and anything too far from every label degrades to
// lookup as the safe default.
func coerceStrategy(raw string) domain.Strategy {
	label := strings.ToLower(strings.TrimSpace(raw))
	label = strings.Trim(label, `"'.:`)

	if s := domain.Strategy(label); s.IsValid() {
		return s
	}

	for _, s := range domain.Strategies() {
		if strings.Contains(label, string(s)) {
			return s
		}
	}

	best := domain.StrategyLookup
	bestDist := len(label) + 1
	for _, s := range domain.Strategies() {
		if d := editDistance(label, string(s)); d < bestDist {
			bestDist = d
			best = s
		}
	}
	// A label further than half its length from everything is noise.
	if bestDist > len(best)/2 {
		return domain.StrategyLookup
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
