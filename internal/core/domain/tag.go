package domain

import (
	"errors"
	"time"
)

var ErrTagNotFound = errors.New("tag not found")
var ErrTagExists = errors.New("tag already exists")

// Tag is a curated label posts can reference by slug.
type Tag struct {
	Slug      string    `json:"slug" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
