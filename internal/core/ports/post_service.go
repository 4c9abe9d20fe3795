package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// CreatePostInput carries the author-supplied fields of a new post.
type CreatePostInput struct {
	Title string
	Body  string
	Tags  []string
}

// UpdatePostInput carries the replaceable fields of an existing post.
type UpdatePostInput struct {
	Title string
	Body  string
	Tags  []string
}

// ListPostsInput carries all parameters for the list endpoint.
type ListPostsInput struct {
	AuthorID string
	Tag      string
	Page     int
	Limit    int
}

// ListPostsResult is returned by ListPosts.
type ListPostsResult struct {
	Items      []*domain.Post
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// PostService defines use-case operations for posts. Mutations consult the
// authorization evaluator before touching the repository.
type PostService interface {
	Create(ctx context.Context, actor domain.Principal, input CreatePostInput) (*domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, input ListPostsInput) (*ListPostsResult, error)
	Update(ctx context.Context, actor domain.Principal, id string, input UpdatePostInput) (*domain.Post, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
}
