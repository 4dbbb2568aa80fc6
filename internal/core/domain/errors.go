package domain

import (
	"errors"
	"fmt"
)

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the user lacks permission for this action
	ErrForbidden = errors.New("forbidden")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrSessionNotFound indicates the session does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidCredentials indicates wrong email/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidProvider indicates an unknown AI provider was specified
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrServiceUnavailable indicates an external AI service could not be reached
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrIndexingInProgress indicates the document is currently being indexed
	ErrIndexingInProgress = errors.New("indexing already in progress")

	// ErrDocumentNotIndexed indicates the document has no retrievable passages
	ErrDocumentNotIndexed = errors.New("document not indexed")
)

// Phase identifies which step of the answer pipeline failed.
type Phase string

const (
	PhaseClassification Phase = "classification"
	PhaseRetrieval      Phase = "retrieval"
	PhaseSummary        Phase = "per-interviewee-summary"
	PhaseSynthesis      Phase = "final-synthesis"
)

// EmbeddingServiceError wraps a failure of the external embedding service.
type EmbeddingServiceError struct {
	Err error
}

func (e *EmbeddingServiceError) Error() string {
	return fmt.Sprintf("embedding service: %v", e.Err)
}

func (e *EmbeddingServiceError) Unwrap() error { return e.Err }

// VectorIndexError wraps a failure of the external vector index.
type VectorIndexError struct {
	Op  string // "upsert", "query", "delete"
	Err error
}

func (e *VectorIndexError) Error() string {
	return fmt.Sprintf("vector index %s: %v", e.Op, e.Err)
}

func (e *VectorIndexError) Unwrap() error { return e.Err }

// GenerationError wraps a failure inside the answer pipeline and records
// the phase that issued it, so the API surface can report which step failed.
type GenerationError struct {
	Phase Phase
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed during %s: %v", e.Phase, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// NewGenerationError wraps err with the failing phase.
func NewGenerationError(phase Phase, err error) *GenerationError {
	return &GenerationError{Phase: phase, Err: err}
}
