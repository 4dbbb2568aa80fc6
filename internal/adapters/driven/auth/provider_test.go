package auth

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
)

func testProvider(ttl time.Duration) *Provider {
	return NewProviderWithCost("test-secret", ttl, bcrypt.MinCost)
}

func testUser() *domain.User {
	return &domain.User{
		ID:    "user-1",
		Email: "alice@example.com",
		Role:  domain.RoleMember,
	}
}

func TestProvider_HashAndCheckPassword(t *testing.T) {
	p := testProvider(0)

	hash, err := p.HashPassword("secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "secret" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if !p.CheckPassword("secret", hash) {
		t.Error("expected password to verify")
	}
	if p.CheckPassword("wrong", hash) {
		t.Error("expected wrong password to fail")
	}
}

func TestProvider_GenerateAndValidateToken(t *testing.T) {
	p := testProvider(time.Hour)

	token, err := p.GenerateToken(testUser(), "session-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := p.ValidateToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("unexpected user id %q", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("unexpected email %q", claims.Email)
	}
	if claims.Role != domain.RoleMember {
		t.Errorf("unexpected role %q", claims.Role)
	}
	if claims.SessionID != "session-1" {
		t.Errorf("unexpected session id %q", claims.SessionID)
	}
	if claims.ExpiresAt <= claims.IssuedAt {
		t.Error("expected expiry after issue time")
	}
}

func TestProvider_ValidateTokenWrongSecret(t *testing.T) {
	p := testProvider(time.Hour)
	other := NewProviderWithCost("other-secret", time.Hour, bcrypt.MinCost)

	token, err := p.GenerateToken(testUser(), "session-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestProvider_ValidateExpiredToken(t *testing.T) {
	p := testProvider(-time.Minute)

	token, err := p.GenerateToken(testUser(), "session-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := p.ValidateToken(token); err == nil {
		t.Error("expected validation to fail for expired token")
	}
}

func TestProvider_ValidateGarbageToken(t *testing.T) {
	p := testProvider(time.Hour)

	if _, err := p.ValidateToken("not-a-jwt"); err == nil {
		t.Error("expected validation to fail for malformed token")
	}
}
