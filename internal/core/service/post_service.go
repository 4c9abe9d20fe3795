package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/api/metrics"
	"github.com/inkwell/blog-platform/internal/core/authz"
	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

const maxPageSize = 100

// PostService implements post use cases. Update and delete are owner-scoped
// mutations: the policy evaluator decides before the repository is touched.
type PostService struct {
	repo ports.PostRepository
	log  zerolog.Logger
}

func NewPostService(repo ports.PostRepository, log zerolog.Logger) *PostService {
	return &PostService{repo: repo, log: log}
}

// Create publishes a new post authored by the actor.
func (s *PostService) Create(ctx context.Context, actor domain.Principal, input ports.CreatePostInput) (*domain.Post, error) {
	if err := authorize(actor, authz.Action{ResourceKind: "post"}); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &domain.Post{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Body:        input.Body,
		AuthorID:    actor.ID,
		AuthorLogin: actor.Login,
		Tags:        normalizeTags(input.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.log.Error().Err(err).Msg("failed to create post")
		return nil, err
	}

	metrics.PostsCreatedTotal.Inc()
	s.log.Info().Str("post_id", post.ID).Str("author", actor.Login).Msg("post created")
	return post, nil
}

// Get retrieves a single post. Reading is public.
func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a page of posts.
func (s *PostService) List(ctx context.Context, input ports.ListPostsInput) (*ports.ListPostsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	items, total, err := s.repo.List(ctx, ports.ListPostsFilter{
		AuthorID: input.AuthorID,
		Tag:      input.Tag,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListPostsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Update replaces the mutable fields of a post. Only the author or an admin
// may do so.
func (s *PostService) Update(ctx context.Context, actor domain.Principal, id string, input ports.UpdatePostInput) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorize(actor, authz.Action{ResourceKind: "post", ResourceOwnerID: post.AuthorID}); err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Body = input.Body
	post.Tags = normalizeTags(input.Tags)
	post.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, post); err != nil {
		s.log.Error().Err(err).Str("post_id", id).Msg("failed to update post")
		return nil, err
	}

	s.log.Info().Str("post_id", id).Str("actor", actor.Login).Msg("post updated")
	return post, nil
}

// Delete removes a post. Only the author or an admin may do so.
func (s *PostService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authorize(actor, authz.Action{ResourceKind: "post", ResourceOwnerID: post.AuthorID}); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Str("post_id", id).Msg("failed to delete post")
		return err
	}

	s.log.Info().Str("post_id", id).Str("actor", actor.Login).Msg("post deleted")
	return nil
}

// normalizeTags lowercases, trims, and deduplicates tag slugs, preserving
// first-seen order.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		slug := strings.ToLower(strings.TrimSpace(t))
		if slug == "" {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		out = append(out, slug)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
