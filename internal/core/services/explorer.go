package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/qwizz-labs/qwizz-core/internal/chunker"
	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
)

// Explorer generates the exploration summary of a document: key points
// are extracted per chunk, then condensed into one overview. Runs on the
// background worker after upload.
type Explorer struct {
	documents driven.DocumentStore
	llm       driven.LLMService
	splitter  *chunker.Chunker
	logger    *slog.Logger
}

// NewExplorer creates an Explorer.
func NewExplorer(documents driven.DocumentStore, llm driven.LLMService, splitter *chunker.Chunker, logger *slog.Logger) *Explorer {
	if logger == nil {
		logger = slog.Default()
	}
	if splitter == nil {
		// Summary chunks are larger than retrieval passages.
		splitter = chunker.New(chunker.Config{TargetSize: 6000, OverlapChars: 0})
	}
	return &Explorer{documents: documents, llm: llm, splitter: splitter, logger: logger}
}

const keyPointsPrompt = `You are a proficient AI with a specialty in distilling information into key
points. Based on the following interview text, identify and list the main
points that were discussed or brought up. These should be the most important
ideas, findings, or topics crucial to the essence of the discussion.

Text:
%TEXT%

Key points:`

const condensePrompt = `You are an AI assistant specialized in summarizing information. Below are
bullet point lists of key points extracted from consecutive parts of one
interview. Restructure them into a single concise, well-organized overview
that lets a reader quickly understand the main ideas of the interview.

Key points:
%POINTS%

Overview:`

// Summarize generates and stores the summary of a document. On failure
// the summary status is set to error and the cause is returned.
func (e *Explorer) Summarize(ctx context.Context, documentID string, settings domain.GenerationSettings) error {
	doc, err := e.documents.Get(ctx, documentID)
	if err != nil {
		return err
	}

	summary, err := e.summarize(ctx, doc.Text, settings)
	if err != nil {
		if setErr := e.documents.SetSummary(ctx, doc.ID, "", domain.SummaryStatusError); setErr != nil {
			e.logger.Error("failed to record summary failure", "document_id", doc.ID, "error", setErr)
		}
		return err
	}

	return e.documents.SetSummary(ctx, doc.ID, summary, domain.SummaryStatusCompleted)
}

func (e *Explorer) summarize(ctx context.Context, text string, settings domain.GenerationSettings) (string, error) {
	spans := e.splitter.Split(text)
	if len(spans) == 0 {
		return "", fmt.Errorf("%w: document has no text", domain.ErrInvalidInput)
	}

	// Short documents skip the map step.
	if len(spans) == 1 {
		return e.generate(ctx, strings.Replace(keyPointsPrompt, "%TEXT%", spans[0].Content, 1), settings)
	}

	points := make([]string, 0, len(spans))
	for _, span := range spans {
		p, err := e.generate(ctx, strings.Replace(keyPointsPrompt, "%TEXT%", span.Content, 1), settings)
		if err != nil {
			return "", err
		}
		points = append(points, p)
	}

	return e.generate(ctx, strings.Replace(condensePrompt, "%POINTS%", strings.Join(points, "\n\n"), 1), settings)
}

func (e *Explorer) generate(ctx context.Context, prompt string, settings domain.GenerationSettings) (string, error) {
	var text string
	err := withRetry(ctx, retryAttempts, retryDelay, func() error {
		var genErr error
		text, genErr = e.llm.Generate(ctx, prompt, settings)
		return genErr
	})
	if err != nil {
		return "", domain.NewGenerationError(domain.PhaseSynthesis, err)
	}
	return text, nil
}
