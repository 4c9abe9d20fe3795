package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// RegisterInput carries the data needed to create an account. Role defaults
// to the regular user role when empty; granting admin requires an admin actor.
type RegisterInput struct {
	Login    string
	Email    string
	Password string
	Role     domain.Role
}

// RedeemResetInput carries one password-reset redemption attempt.
type RedeemResetInput struct {
	Login       string
	Email       string
	ResetToken  string
	NewPassword string
}

// AuthService is the authentication gate: sole verifier of credentials and
// sole minter of session tokens.
type AuthService interface {
	Register(ctx context.Context, actor *domain.Principal, input RegisterInput) (*domain.User, error)
	// Login verifies credentials and mints a session token. Every failure is
	// domain.ErrInvalidCredentials; whether the login existed is never disclosed.
	Login(ctx context.Context, login, password string) (string, *domain.User, error)
	// Verify decodes and validates a presented session token. All bad-token
	// outcomes collapse to domain.ErrUnauthenticated.
	Verify(token string) (*domain.Principal, error)
	// RequestPasswordReset mints a reset token for out-of-band delivery.
	// Unlike login, this path does disclose an unknown principal.
	RequestPasswordReset(ctx context.Context, login, email string) (string, error)
	RedeemPasswordReset(ctx context.Context, input RedeemResetInput) error
}
