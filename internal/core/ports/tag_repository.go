package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// TagRepository defines persistence operations for tags.
type TagRepository interface {
	Create(ctx context.Context, t *domain.Tag) error
	List(ctx context.Context) ([]*domain.Tag, error)
}
