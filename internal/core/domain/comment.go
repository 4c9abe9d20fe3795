package domain

import (
	"errors"
	"time"
)

var ErrCommentNotFound = errors.New("comment not found")

// Comment is a reader remark attached to a single post.
type Comment struct {
	ID          string    `json:"id" bson:"_id"`
	PostID      string    `json:"post_id" bson:"post_id"`
	AuthorID    string    `json:"author_id" bson:"author_id"`
	AuthorLogin string    `json:"author_login" bson:"author_login"`
	Body        string    `json:"body" bson:"body"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
