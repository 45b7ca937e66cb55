package models

import (
	"errors"
	"fmt"
	"time"
)

// Common error codes for JSON responses
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodePersistence  = "PERSISTENCE_ERROR"
	ErrCodeUpload       = "UPLOAD_ERROR"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// Common errors
var (
	ErrVideoNotFound = errors.New("video not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrUnauthorized  = errors.New("unauthorized access")
	ErrInvalidInput  = errors.New("invalid input")
)

// AppError carries an error kind plus the HTTP status it maps to.
// Collaborator errors keep their kind as they propagate up.
type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	StatusCode int                    `json:"status_code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ToHTTPError converts to an HTTP-compatible error response
func (e *AppError) ToHTTPError() *APIResponse {
	return &APIResponse{
		Success:   false,
		Error:     e.Message,
		Message:   e.Message,
		Timestamp: time.Now(),
	}
}

// NewHTTPError builds an AppError with an explicit status code
func NewHTTPError(code, message string, statusCode int, err error) *AppError {
	appErr := &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
	if err != nil {
		appErr.Details = map[string]interface{}{"original_error": err.Error()}
	}
	return appErr
}

// NewNotFound builds a 404 AppError
func NewNotFound(message string, err error) *AppError {
	return NewHTTPError(ErrCodeNotFound, message, 404, err)
}

// NewBadRequest builds a 400 AppError for malformed input
func NewBadRequest(message string, err error) *AppError {
	return NewHTTPError(ErrCodeBadRequest, message, 400, err)
}

// NewUnauthorized builds a 401 AppError
func NewUnauthorized(message string, err error) *AppError {
	return NewHTTPError(ErrCodeUnauthorized, message, 401, err)
}

// NewPersistenceError wraps a downstream store failure (not retried)
func NewPersistenceError(message string, err error) *AppError {
	return NewHTTPError(ErrCodePersistence, message, 500, err)
}

// NewUploadError wraps an object-store write or transport failure
func NewUploadError(message string, err error) *AppError {
	return NewHTTPError(ErrCodeUpload, message, 500, err)
}

// StatusOf returns the HTTP status for err, defaulting to 500
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	return 500
}
