package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// CommentService defines use-case operations for comments. Deletion is
// self-or-admin scoped.
type CommentService interface {
	Create(ctx context.Context, actor domain.Principal, postID, body string) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]*domain.Comment, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
}
