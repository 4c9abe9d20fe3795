package handler

import "github.com/inkwell/blog-platform/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type createPostRequest struct {
	Title string   `json:"title" validate:"required,max=200"`
	Body  string   `json:"body"  validate:"required"`
	Tags  []string `json:"tags"  validate:"omitempty,max=10,dive,min=1,max=40"`
}

type updatePostRequest struct {
	Title string   `json:"title" validate:"required,max=200"`
	Body  string   `json:"body"  validate:"required"`
	Tags  []string `json:"tags"  validate:"omitempty,max=10,dive,min=1,max=40"`
}

type listPostsResponse struct {
	Items      []*domain.Post `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

type createCommentRequest struct {
	Body string `json:"body" validate:"required,max=2000"`
}

type createTagRequest struct {
	Name string `json:"name" validate:"required,min=2,max=40"`
}
