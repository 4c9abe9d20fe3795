package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/api/metrics"
	"github.com/inkwell/blog-platform/internal/core/authz"
	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// CommentService implements comment use cases. Deletion is self-or-admin:
// the comment's author or any admin.
type CommentService struct {
	comments ports.CommentRepository
	posts    ports.PostRepository
	log      zerolog.Logger
}

func NewCommentService(comments ports.CommentRepository, posts ports.PostRepository, log zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, posts: posts, log: log}
}

// Create attaches a comment to an existing post.
func (s *CommentService) Create(ctx context.Context, actor domain.Principal, postID, body string) (*domain.Comment, error) {
	if err := authorize(actor, authz.Action{ResourceKind: "comment"}); err != nil {
		return nil, err
	}

	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:          uuid.NewString(),
		PostID:      postID,
		AuthorID:    actor.ID,
		AuthorLogin: actor.Login,
		Body:        body,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		s.log.Error().Err(err).Str("post_id", postID).Msg("failed to create comment")
		return nil, err
	}

	metrics.CommentsCreatedTotal.Inc()
	s.log.Info().Str("comment_id", comment.ID).Str("post_id", postID).Msg("comment created")
	return comment, nil
}

// ListByPost returns all comments on a post, oldest first. Reading is public.
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]*domain.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

// Delete removes a comment. The author or an admin may do so.
func (s *CommentService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}

	action := authz.Action{
		ResourceKind:        "comment",
		ResourceOwnerID:     comment.AuthorID,
		RequiresSelfOrAdmin: true,
	}
	if err := authorize(actor, action); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Str("comment_id", id).Msg("failed to delete comment")
		return err
	}

	s.log.Info().Str("comment_id", id).Str("actor", actor.Login).Msg("comment deleted")
	return nil
}
