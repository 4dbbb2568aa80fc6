package mocks

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
)

// MockAuthProvider is a mock implementation of AuthProvider for testing.
// Tokens are unsigned base64 claims; passwords are "hashed" by prefixing.
type MockAuthProvider struct {
	TokenTTL time.Duration
}

// NewMockAuthProvider creates a new MockAuthProvider
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{TokenTTL: 24 * time.Hour}
}

func (m *MockAuthProvider) GenerateToken(user *domain.User, sessionID string) (string, error) {
	claims := domain.TokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		SessionID: sessionID,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(m.TokenTTL).Unix(),
	}
	data, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

func (m *MockAuthProvider) ValidateToken(token string) (*domain.TokenClaims, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	var claims domain.TokenClaims
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, domain.ErrTokenInvalid
	}
	return &claims, nil
}

func (m *MockAuthProvider) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (m *MockAuthProvider) CheckPassword(password, hash string) bool {
	return hash == "hashed:"+password
}

// MockTextExtractor is a mock implementation of TextExtractor for testing.
// It returns the file bytes as text unless a canned result is set.
type MockTextExtractor struct {
	Text string
	Err  error
}

// NewMockTextExtractor creates a new MockTextExtractor
func NewMockTextExtractor() *MockTextExtractor {
	return &MockTextExtractor{}
}

func (m *MockTextExtractor) Extract(name string, data []byte) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Text != "" {
		return m.Text, nil
	}
	return strings.TrimSpace(string(data)), nil
}
