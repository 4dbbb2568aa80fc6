package extract

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor implements TextExtractor for plain-text transcript formats.
// Transcripts arrive as exported text; binary formats are rejected up front
// rather than producing garbage passages.
type Extractor struct{}

// NewExtractor creates a plain-text extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

var supportedExtensions = map[string]bool{
	".txt":  true,
	".text": true,
	".md":   true,
	"":      true,
}

// Extract returns the raw text of the uploaded file
func (e *Extractor) Extract(name string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if !supportedExtensions[ext] {
		return "", fmt.Errorf("%w: unsupported file type %q", domain.ErrInvalidInput, ext)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: file is not valid UTF-8 text", domain.ErrInvalidInput)
	}

	text := string(data)

	// Normalize line endings and strip a UTF-8 BOM if present
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	return text, nil
}
