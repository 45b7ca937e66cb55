package models

import "time"

// APIResponse is the generic response envelope for all HTTP endpoints
type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// VideoListResponse lists every stored video. No pagination: the catalog
// is served whole, a known scaling limitation.
type VideoListResponse struct {
	Data  []VideoDTO `json:"data"`
	Total int        `json:"total"`
}

// CommentListResponse lists a video's comments in append order
type CommentListResponse struct {
	Data  []CommentDTO `json:"data"`
	Total int          `json:"total"`
}
