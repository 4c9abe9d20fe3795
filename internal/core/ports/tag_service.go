package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// TagService defines use-case operations for tags. Creation is admin-only.
type TagService interface {
	Create(ctx context.Context, actor domain.Principal, name string) (*domain.Tag, error)
	List(ctx context.Context) ([]*domain.Tag, error)
}
