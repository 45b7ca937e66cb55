package models

import (
	"time"
)

// User represents a system user. Users are keyed by the external subject
// claim of their bearer token and created lazily on first authenticated
// request; there is no local credential storage.
type User struct {
	ID        string    `json:"id" db:"id"`
	Sub       string    `json:"-" db:"sub"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// WatchHistoryEntry is one append-only watch-history record. Duplicate
// video ids are expected; re-watching appends again.
type WatchHistoryEntry struct {
	VideoID   string    `json:"video_id" db:"video_id"`
	WatchedAt time.Time `json:"watched_at" db:"watched_at"`
}

// WatchHistoryResponse lists the current user's history in append order
type WatchHistoryResponse struct {
	Data []WatchHistoryEntry `json:"data"`
}
