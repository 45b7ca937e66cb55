package models

import (
	"time"
)

// VideoStatus represents valid video status values
type VideoStatus string

const (
	VideoStatusPrivate    VideoStatus = "private"
	VideoStatusPublic     VideoStatus = "public"
	VideoStatusProcessing VideoStatus = "processing"
)

// Video represents a hosted video aggregate
type Video struct {
	ID            string    `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	Tags          []string  `json:"tags" db:"tags"`
	VideoURL      string    `json:"video_url" db:"video_url"` // immutable after creation
	ThumbnailURL  string    `json:"thumbnail_url" db:"thumbnail_url"`
	Status        string    `json:"status" db:"status"` // private, public, processing
	ViewCount     int       `json:"view_count" db:"view_count"`
	LikesCount    int       `json:"likes_count" db:"likes_count"`
	DislikesCount int       `json:"dislikes_count" db:"dislikes_count"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Counter mutations. Counters are only touched through engagement
// transitions; decrements never go below zero.

func (v *Video) IncrementViews() {
	v.ViewCount++
}

func (v *Video) IncrementLikes() {
	v.LikesCount++
}

func (v *Video) DecrementLikes() {
	if v.LikesCount > 0 {
		v.LikesCount--
	}
}

func (v *Video) IncrementDislikes() {
	v.DislikesCount++
}

func (v *Video) DecrementDislikes() {
	if v.DislikesCount > 0 {
		v.DislikesCount--
	}
}

// VideoDTO is the API representation of a video. It doubles as the
// edit-metadata request body (PUT /api/videos), matching response shape.
type VideoDTO struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Tags          []string `json:"tags"`
	VideoURL      string   `json:"video_url"`
	ThumbnailURL  string   `json:"thumbnail_url"`
	Status        string   `json:"status"`
	ViewCount     int      `json:"view_count"`
	LikesCount    int      `json:"likes_count"`
	DislikesCount int      `json:"dislikes_count"`
}

// UploadVideoResponse is returned after a successful video upload
type UploadVideoResponse struct {
	ID       string `json:"id"`
	VideoURL string `json:"video_url"`
}

// IsValidVideoStatus validates status against schema constraints
func IsValidVideoStatus(status string) bool {
	switch VideoStatus(status) {
	case VideoStatusPrivate, VideoStatusPublic, VideoStatusProcessing:
		return true
	default:
		return false
	}
}
