package models

import (
	"time"
)

// Comment represents a video comment - EXACTLY matches schema.sql.
// Comments are owned by their parent video and immutable after append.
type Comment struct {
	Position  int64     `json:"-" db:"position"` // append order within the video
	VideoID   string    `json:"video_id" db:"video_id"`
	AuthorID  string    `json:"author_id" db:"author_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateCommentRequest - video id comes from the URL path
type CreateCommentRequest struct {
	Text     string `json:"text" validate:"required,min=1,max=5000"`
	AuthorID string `json:"author_id"` // defaults to the authenticated user
}

// CommentDTO is the API representation of a comment
type CommentDTO struct {
	Text     string `json:"text"`
	AuthorID string `json:"author_id"`
}

const MaxCommentLength = 5000
