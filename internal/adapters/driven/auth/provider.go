package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
)

// Ensure Provider implements AuthProvider
var _ driven.AuthProvider = (*Provider)(nil)

// jwtClaims wraps domain.TokenClaims for JWT compatibility
type jwtClaims struct {
	UserID    string      `json:"user_id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	SessionID string      `json:"session_id"`
	jwt.RegisteredClaims
}

// Provider handles authentication operations using bcrypt and JWT
type Provider struct {
	jwtSecret  []byte
	bcryptCost int
	tokenTTL   time.Duration
}

// NewProvider creates a new auth provider with the given JWT secret
func NewProvider(jwtSecret string, tokenTTL time.Duration) *Provider {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Provider{
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcrypt.DefaultCost,
		tokenTTL:   tokenTTL,
	}
}

// NewProviderWithCost creates a new auth provider with custom bcrypt cost.
// Lower costs are useful in tests.
func NewProviderWithCost(jwtSecret string, tokenTTL time.Duration, bcryptCost int) *Provider {
	p := NewProvider(jwtSecret, tokenTTL)
	p.bcryptCost = bcryptCost
	return p
}

// HashPassword generates a bcrypt hash from a plaintext password
func (p *Provider) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password with a stored bcrypt hash
func (p *Provider) CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateToken creates a signed JWT for the user's session
func (p *Provider) GenerateToken(user *domain.User, sessionID string) (string, error) {
	now := time.Now()
	jc := jwtClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jc)
	return token.SignedString(p.jwtSecret)
}

// ValidateToken parses and validates a JWT, returning domain claims
func (p *Provider) ValidateToken(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*jwtClaims); ok && token.Valid {
		return &domain.TokenClaims{
			UserID:    claims.UserID,
			Email:     claims.Email,
			Role:      claims.Role,
			SessionID: claims.SessionID,
			IssuedAt:  claims.IssuedAt.Unix(),
			ExpiresAt: claims.ExpiresAt.Unix(),
		}, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}
