package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// UserRepository is the principal directory: the only persistence surface the
// authentication gate consumes.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	// FindByLoginAndEmail resolves a principal for password-reset redemption.
	// The email comparison is exact and case-sensitive.
	FindByLoginAndEmail(ctx context.Context, login, email string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error
}
