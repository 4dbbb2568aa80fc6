package driven

import (
	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
)

// AuthProvider issues and validates auth tokens.
type AuthProvider interface {
	// GenerateToken creates a signed token for the session.
	GenerateToken(user *domain.User, sessionID string) (string, error)

	// ValidateToken parses and validates a token, returning its claims.
	ValidateToken(token string) (*domain.TokenClaims, error)

	// HashPassword hashes a plaintext password for storage.
	HashPassword(password string) (string, error)

	// CheckPassword compares a plaintext password with a stored hash.
	CheckPassword(password, hash string) bool
}

// TextExtractor turns an uploaded file into plain text. Extraction is a
// pure function of the file contents; PDF/DOCX support lives behind this
// interface, outside the core.
type TextExtractor interface {
	// Extract returns the raw text of the file identified by name.
	Extract(name string, data []byte) (string, error)
}
