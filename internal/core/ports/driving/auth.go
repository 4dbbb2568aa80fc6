package driving

import (
	"context"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
)

// AuthService handles authentication and session management.
type AuthService interface {
	Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	RefreshToken(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error)
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)
	Logout(ctx context.Context, sessionID string) error
}

// UserService manages user accounts.
type UserService interface {
	Create(ctx context.Context, email, password, name string, role domain.Role) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}
