package extract

import (
	"errors"
	"testing"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
)

func TestExtractor_PlainText(t *testing.T) {
	e := NewExtractor()

	text, err := e.Extract("interview.txt", []byte("Q: How is the budget?\nA: Tight."))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Q: How is the budget?\nA: Tight." {
		t.Errorf("unexpected text %q", text)
	}
}

func TestExtractor_NormalizesLineEndings(t *testing.T) {
	e := NewExtractor()

	text, err := e.Extract("interview.txt", []byte("line one\r\nline two\rline three"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "line one\nline two\nline three" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestExtractor_StripsBOM(t *testing.T) {
	e := NewExtractor()

	text, err := e.Extract("interview.txt", []byte("\xef\xbb\xbfhello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hello" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestExtractor_RejectsUnsupportedExtension(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract("interview.pdf", []byte("%PDF-1.4"))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestExtractor_RejectsBinaryData(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract("interview.txt", []byte{0xff, 0xfe, 0x00, 0x01})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
