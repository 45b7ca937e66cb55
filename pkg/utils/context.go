package utils

import (
	"context"
	"time"
)

// DefaultTimeout is the standard timeout for database operations
const DefaultTimeout = 5 * time.Second

// WithTimeout creates context with default timeout
func WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultTimeout)
}

// WithUploadTimeout creates context with a longer timeout for object uploads
func WithUploadTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 2*time.Minute)
}

// IsContextError checks if error is from context cancellation
func IsContextError(err error) bool {
	return err != nil && (err == context.Canceled || err == context.DeadlineExceeded)
}
