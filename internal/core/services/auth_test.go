package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven/mocks"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driving"
)

type authFixture struct {
	users    *mocks.MockUserStore
	sessions *mocks.MockSessionStore
	provider *mocks.MockAuthProvider
	auth     driving.AuthService
	userSvc  driving.UserService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users:    mocks.NewMockUserStore(),
		sessions: mocks.NewMockSessionStore(),
		provider: mocks.NewMockAuthProvider(),
	}
	f.auth = NewAuthService(f.users, f.sessions, f.provider)
	f.userSvc = NewUserService(f.users, f.sessions, f.provider)

	_, err := f.userSvc.Create(context.Background(), "alice@example.com", "secret", "Alice", domain.RoleMember)
	if err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return f
}

func TestAuthService_Authenticate(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.auth.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" || resp.RefreshToken == "" {
		t.Error("expected token and refresh token")
	}
	if resp.User == nil || resp.User.Email != "alice@example.com" {
		t.Errorf("user = %+v", resp.User)
	}
	if f.sessions.Count() != 1 {
		t.Errorf("sessions = %d, want 1", f.sessions.Count())
	}
}

func TestAuthService_Authenticate_WrongPassword(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_UnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.auth.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	authCtx, err := f.auth.ValidateToken(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if authCtx.Email != "alice@example.com" || authCtx.Role != domain.RoleMember {
		t.Errorf("auth context = %+v", authCtx)
	}

	// After logout the same token is rejected.
	if err := f.auth.Logout(context.Background(), authCtx.SessionID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.auth.ValidateToken(context.Background(), resp.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after logout, got %v", err)
	}
}

func TestAuthService_RefreshToken_RotatesSession(t *testing.T) {
	f := newAuthFixture(t)

	login, err := f.auth.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	refreshed, err := f.auth.RefreshToken(context.Background(), domain.RefreshRequest{
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Error("refresh token should rotate")
	}
	if f.sessions.Count() != 1 {
		t.Errorf("sessions = %d, want 1 after rotation", f.sessions.Count())
	}

	// The old refresh token is spent.
	if _, err := f.auth.RefreshToken(context.Background(), domain.RefreshRequest{
		RefreshToken: login.RefreshToken,
	}); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for spent refresh token, got %v", err)
	}
}

func TestAuthService_ValidateToken_ExpiredSession(t *testing.T) {
	f := newAuthFixture(t)

	user, _ := f.users.GetByEmail(context.Background(), "alice@example.com")
	token, _ := f.provider.GenerateToken(user, "session-1")
	_ = f.sessions.Save(context.Background(), &domain.Session{
		ID:        "session-1",
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(-time.Hour),
		CreatedAt: time.Now().Add(-25 * time.Hour),
	})

	if _, err := f.auth.ValidateToken(context.Background(), token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.userSvc.Create(context.Background(), "alice@example.com", "other", "Alice 2", domain.RoleMember)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUserService_Delete_InvalidatesSessions(t *testing.T) {
	f := newAuthFixture(t)

	login, err := f.auth.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, _ := f.users.GetByEmail(context.Background(), "alice@example.com")
	if err := f.userSvc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.sessions.Count() != 0 {
		t.Errorf("sessions = %d, want 0", f.sessions.Count())
	}
	if _, err := f.auth.ValidateToken(context.Background(), login.Token); err == nil {
		t.Error("token should be rejected after user deletion")
	}
}
