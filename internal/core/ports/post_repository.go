package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// ListPostsFilter carries all query parameters for listing posts.
type ListPostsFilter struct {
	AuthorID string // optional: scope to one author
	Tag      string // optional: posts carrying this tag slug
	Page     int    // 1-based
	Limit    int    // max rows per page (capped at 100 by the service)
}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) error
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	Update(ctx context.Context, p *domain.Post) error
	Delete(ctx context.Context, id string) error
	// List returns a page of posts matching filter and the total count.
	List(ctx context.Context, filter ListPostsFilter) ([]*domain.Post, int64, error)
}
