package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
)

// Composer turns a selected strategy into an answer. lookup is one
// retrieval and one synthesis call; compare fans out per interviewee and
// synthesizes a comparison from the sub-answers; quotes extracts verbatim
// passages. All strategies fall back to the no-context answer when the
// scope holds no indexed passages.
type Composer struct {
	retriever *Retriever
	llm       driven.LLMService
	cache     driven.SummaryCache // may be nil; compare retries then redo sub-calls
	logger    *slog.Logger

	// maxConcurrent bounds the per-interviewee fan-out of compare.
	maxConcurrent int
}

// NewComposer creates a Composer. cache may be nil.
func NewComposer(retriever *Retriever, llm driven.LLMService, cache driven.SummaryCache, logger *slog.Logger) *Composer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Composer{
		retriever:     retriever,
		llm:           llm,
		cache:         cache,
		logger:        logger,
		maxConcurrent: 4,
	}
}

// Composition is the result of one compose run.
type Composition struct {
	Answer    string
	Citations []string
	Strategy  domain.Strategy
}

// Compose dispatches to the strategy implementation.
func (c *Composer) Compose(ctx context.Context, strategy domain.Strategy, req domain.AskRequest, history string, topK int) (*Composition, error) {
	switch strategy {
	case domain.StrategyCompare:
		return c.compare(ctx, req, history, topK)
	case domain.StrategyQuotes:
		return c.quotes(ctx, req, history, topK)
	default:
		return c.lookup(ctx, req, history, topK)
	}
}

const lookupPrompt = `You will be provided with excerpts from various interviews. Each excerpt is
labeled with a passage id and the interviewee it came from. Excerpts from the
same interviewee belong to the same interview.
Answer the question truthfully based solely on the given excerpts. Reference
every relevant source inline as "passage <id>". If the excerpts do not
contain the answer, say that answering is not possible given the available
information.

Conversation so far:
%HISTORY%

Excerpts:
%PASSAGES%

Question: %QUERY%
Answer:`

func (c *Composer) lookup(ctx context.Context, req domain.AskRequest, history string, topK int) (*Composition, error) {
	scope := domain.RetrievalScope{ProjectID: req.ProjectID, DocumentIDs: req.DocumentIDs}
	ranked, err := c.retrieve(ctx, req.Query, scope, topK)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return &Composition{Answer: domain.NoContextAnswer, Strategy: domain.StrategyLookup}, nil
	}

	prompt := strings.NewReplacer(
		"%HISTORY%", history,
		"%PASSAGES%", renderPassages(ranked),
		"%QUERY%", req.Query,
	).Replace(lookupPrompt)

	text, err := c.generate(ctx, prompt, req.Settings, domain.PhaseSynthesis)
	if err != nil {
		return nil, err
	}

	answer, citations := ExtractCitations(text)
	return &Composition{Answer: answer, Citations: citations, Strategy: domain.StrategyLookup}, nil
}

const summaryPrompt = `You will be provided with excerpts from one interview, labeled with passage
ids. Answer the question truthfully based solely on the given excerpts, in at
most 100 words. Reference every relevant source inline as "passage <id>". If
the excerpts do not contain the answer, say so.

Excerpts:
%PASSAGES%

Question: %QUERY%
Answer:`

const comparePrompt = `You will be provided with one summarized answer per interviewee to the same
question. Compare the interviewees' positions: name agreements, differences
and notable omissions. Keep the inline "passage <id>" references from the
summaries you draw on.

Conversation so far:
%HISTORY%

%SUMMARIES%

Question: %QUERY%
Comparison:`

// interviewSummary is one completed per-interviewee sub-answer.
type interviewSummary struct {
	interviewee string
	text        string
	empty       bool
}

func (c *Composer) compare(ctx context.Context, req domain.AskRequest, history string, topK int) (*Composition, error) {
	interviewees, err := c.retriever.Interviewees(ctx, req.ProjectID, req.DocumentIDs)
	if err != nil {
		return nil, domain.NewGenerationError(domain.PhaseRetrieval, err)
	}
	if len(interviewees) == 0 {
		return &Composition{Answer: domain.NoContextAnswer, Strategy: domain.StrategyCompare}, nil
	}

	// A single interviewee has nothing to compare against; the result
	// degenerates to that interviewee's lookup answer.
	if len(interviewees) == 1 {
		scoped := req
		comp, err := c.lookupScoped(ctx, scoped, history, topK, interviewees[0])
		if err != nil {
			return nil, err
		}
		comp.Strategy = domain.StrategyCompare
		return comp, nil
	}

	// Per-interviewee retrieval and summarization have no data
	// dependency on each other and run concurrently, each cancellable
	// through the request context.
	summaries := make([]interviewSummary, len(interviewees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrent)
	for i, interviewee := range interviewees {
		g.Go(func() error {
			summary, err := c.summarizeInterviewee(gctx, req, interviewee, topK)
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var parts []string
	var cited [][]string
	for _, s := range summaries {
		if s.empty {
			continue
		}
		parts = append(parts, fmt.Sprintf("Interviewee %s:\n%s", s.interviewee, s.text))
		_, ids := ExtractCitations(s.text)
		cited = append(cited, ids)
	}
	if len(parts) == 0 {
		return &Composition{Answer: domain.NoContextAnswer, Strategy: domain.StrategyCompare}, nil
	}

	prompt := strings.NewReplacer(
		"%HISTORY%", history,
		"%SUMMARIES%", strings.Join(parts, "\n\n"),
		"%QUERY%", req.Query,
	).Replace(comparePrompt)

	text, err := c.generate(ctx, prompt, req.Settings, domain.PhaseSynthesis)
	if err != nil {
		return nil, err
	}

	answer, finalCited := ExtractCitations(text)
	return &Composition{
		Answer:    answer,
		Citations: mergeCitations(append(cited, finalCited)...),
		Strategy:  domain.StrategyCompare,
	}, nil
}

// summarizeInterviewee retrieves one interviewee's passages and produces
// the bounded sub-answer. Completed summaries are cached so a retried
// compare does not redo finished sub-calls.
func (c *Composer) summarizeInterviewee(ctx context.Context, req domain.AskRequest, interviewee string, topK int) (interviewSummary, error) {
	key := summaryCacheKey(req.ChatID, req.Query, interviewee)
	if c.cache != nil {
		if cached, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			return interviewSummary{interviewee: interviewee, text: cached}, nil
		}
	}

	scope := domain.RetrievalScope{
		ProjectID:   req.ProjectID,
		DocumentIDs: req.DocumentIDs,
		Interviewee: interviewee,
	}
	ranked, err := c.retrieve(ctx, req.Query, scope, topK)
	if err != nil {
		return interviewSummary{}, err
	}
	if len(ranked) == 0 {
		return interviewSummary{interviewee: interviewee, empty: true}, nil
	}

	prompt := strings.NewReplacer(
		"%PASSAGES%", renderPassages(ranked),
		"%QUERY%", req.Query,
	).Replace(summaryPrompt)

	text, err := c.generate(ctx, prompt, req.Settings, domain.PhaseSummary)
	if err != nil {
		return interviewSummary{}, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, text); err != nil {
			c.logger.Warn("summary cache write failed", "error", err)
		}
	}
	return interviewSummary{interviewee: interviewee, text: text}, nil
}

// lookupScoped is lookup restricted to one interviewee's passages.
func (c *Composer) lookupScoped(ctx context.Context, req domain.AskRequest, history string, topK int, interviewee string) (*Composition, error) {
	scope := domain.RetrievalScope{
		ProjectID:   req.ProjectID,
		DocumentIDs: req.DocumentIDs,
		Interviewee: interviewee,
	}
	ranked, err := c.retrieve(ctx, req.Query, scope, topK)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return &Composition{Answer: domain.NoContextAnswer, Strategy: domain.StrategyLookup}, nil
	}

	prompt := strings.NewReplacer(
		"%HISTORY%", history,
		"%PASSAGES%", renderPassages(ranked),
		"%QUERY%", req.Query,
	).Replace(lookupPrompt)

	text, err := c.generate(ctx, prompt, req.Settings, domain.PhaseSynthesis)
	if err != nil {
		return nil, err
	}
	answer, citations := ExtractCitations(text)
	return &Composition{Answer: answer, Citations: citations, Strategy: domain.StrategyLookup}, nil
}

const quotesPrompt = `Extract all existing sentences from the following interview excerpts that
answer the question. Quote the sentences verbatim, each followed by its
source as "passage <id>". Do not paraphrase. If no sentence answers the
question, say so.

Excerpts:
%PASSAGES%

Question: %QUERY%
Answer:`

func (c *Composer) quotes(ctx context.Context, req domain.AskRequest, history string, topK int) (*Composition, error) {
	scope := domain.RetrievalScope{ProjectID: req.ProjectID, DocumentIDs: req.DocumentIDs}
	ranked, err := c.retrieve(ctx, req.Query, scope, topK)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return &Composition{Answer: domain.NoContextAnswer, Strategy: domain.StrategyQuotes}, nil
	}

	prompt := strings.NewReplacer(
		"%PASSAGES%", renderPassages(ranked),
		"%QUERY%", req.Query,
	).Replace(quotesPrompt)

	text, err := c.generate(ctx, prompt, req.Settings, domain.PhaseSynthesis)
	if err != nil {
		return nil, err
	}

	answer, citations := ExtractCitations(text)
	return &Composition{Answer: answer, Citations: citations, Strategy: domain.StrategyQuotes}, nil
}

// retrieve tags retrieval failures with the phase that issued them, so
// the request boundary reports which step failed.
func (c *Composer) retrieve(ctx context.Context, query string, scope domain.RetrievalScope, topK int) ([]*domain.RankedPassage, error) {
	ranked, err := c.retriever.Retrieve(ctx, query, scope, topK)
	if err != nil {
		return nil, domain.NewGenerationError(domain.PhaseRetrieval, err)
	}
	return ranked, nil
}

func (c *Composer) generate(ctx context.Context, prompt string, settings domain.GenerationSettings, phase domain.Phase) (string, error) {
	var text string
	err := withRetry(ctx, retryAttempts, retryDelay, func() error {
		var genErr error
		text, genErr = c.llm.Generate(ctx, prompt, settings)
		return genErr
	})
	if err != nil {
		return "", domain.NewGenerationError(phase, err)
	}
	return text, nil
}

// renderPassages formats retrieved passages for prompt context.
func renderPassages(ranked []*domain.RankedPassage) string {
	var b strings.Builder
	for _, rp := range ranked {
		p := rp.Passage
		b.WriteString("passage ")
		b.WriteString(p.ID)
		if p.Interviewee != "" {
			b.WriteString(" (interviewee ")
			b.WriteString(p.Interviewee)
			b.WriteString(")")
		}
		b.WriteString(": ")
		b.WriteString(p.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// summaryCacheKey identifies one interviewee sub-answer of one ask.
func summaryCacheKey(chatID, query, interviewee string) string {
	sum := sha256.Sum256([]byte(chatID + "\x00" + query + "\x00" + interviewee))
	return "summary:" + hex.EncodeToString(sum[:])
}
