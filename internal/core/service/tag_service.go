package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/core/authz"
	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// TagService implements tag use cases. The tag vocabulary is curated, so
// creation is admin-only.
type TagService struct {
	repo ports.TagRepository
	log  zerolog.Logger
}

func NewTagService(repo ports.TagRepository, log zerolog.Logger) *TagService {
	return &TagService{repo: repo, log: log}
}

// Create adds a tag to the vocabulary. Admin only.
func (s *TagService) Create(ctx context.Context, actor domain.Principal, name string) (*domain.Tag, error) {
	if err := authorize(actor, authz.Action{ResourceKind: "tag", RequiresAdmin: true}); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	slug := slugify(name)
	if slug == "" {
		return nil, domain.ErrInvalidInput
	}

	tag := &domain.Tag{
		Slug:      slug,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, err
	}

	s.log.Info().Str("slug", slug).Str("actor", actor.Login).Msg("tag created")
	return tag, nil
}

// List returns the full tag vocabulary. Reading is public.
func (s *TagService) List(ctx context.Context) ([]*domain.Tag, error) {
	return s.repo.List(ctx)
}

// slugify reduces a display name to a lowercase hyphenated slug.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
