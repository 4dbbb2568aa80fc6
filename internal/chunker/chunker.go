package chunker

import (
	"regexp"
	"strings"
)

// Span is one passage-sized slice of a document.
type Span struct {
	Content   string
	Position  int
	StartChar int
	EndChar   int
}

// Chunker splits transcript text into passage spans. Splitting is
// sentence-bounded with a target character size and configurable overlap,
// so ideas are not truncated at chunk boundaries.
type Chunker struct {
	targetSize   int // target characters per passage
	overlapChars int // characters of trailing context carried into the next passage
	splitter     *regexp.Regexp
}

// Config holds chunking parameters.
type Config struct {
	TargetSize   int
	OverlapChars int
}

// DefaultConfig returns the product defaults.
func DefaultConfig() Config {
	return Config{TargetSize: 1200, OverlapChars: 200}
}

// New creates a Chunker.
func New(cfg Config) *Chunker {
	if cfg.TargetSize <= 0 {
		cfg.TargetSize = 1200
	}
	if cfg.OverlapChars < 0 {
		cfg.OverlapChars = 0
	}
	if cfg.OverlapChars >= cfg.TargetSize {
		cfg.OverlapChars = cfg.TargetSize / 4
	}
	return &Chunker{
		targetSize:   cfg.TargetSize,
		overlapChars: cfg.OverlapChars,
		splitter:     regexp.MustCompile(`(?m)(?U)([^.!?\n]+[.!?\n]+|[^.!?\n]+$)`),
	}
}

// Split chunks text into spans. Sentences are accumulated until the target
// size is reached; the last sentences worth up to the overlap budget are
// repeated at the start of the next span. Whitespace-only input yields nil.
func (c *Chunker) Split(text string) []Span {
	sentences := c.splitter.FindAllString(text, -1)
	if len(sentences) == 0 {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		sentences = []string{trimmed}
	}

	for i := range sentences {
		sentences[i] = strings.TrimSpace(sentences[i])
	}

	var spans []Span
	var current []string
	currentLen := 0
	startChar := 0
	position := 0

	flush := func(end int) {
		content := strings.Join(current, " ")
		if strings.TrimSpace(content) == "" {
			return
		}
		spans = append(spans, Span{
			Content:   content,
			Position:  position,
			StartChar: startChar,
			EndChar:   end,
		})
		position++
	}

	offset := 0
	for _, s := range sentences {
		if s == "" {
			continue
		}
		if currentLen > 0 && currentLen+len(s) > c.targetSize {
			flush(offset)

			// Carry trailing sentences into the next span as overlap.
			var overlap []string
			overlapLen := 0
			for i := len(current) - 1; i >= 0; i-- {
				if overlapLen+len(current[i]) > c.overlapChars {
					break
				}
				overlap = append([]string{current[i]}, overlap...)
				overlapLen += len(current[i])
			}
			current = overlap
			currentLen = overlapLen
			startChar = offset - overlapLen
			if startChar < 0 {
				startChar = 0
			}
		}
		current = append(current, s)
		currentLen += len(s)
		offset += len(s) + 1
	}

	if currentLen > 0 {
		flush(offset)
	}

	return spans
}
