package core

import (
	"context"

	"vidhub/internal/repository"
	"vidhub/pkg/models"
)

// UserService exposes per-user reads scoped to the authenticated user
type UserService interface {
	GetWatchHistory(ctx context.Context, userID string) (*models.WatchHistoryResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetWatchHistory returns the user's watch history in append order
func (s *userService) GetWatchHistory(ctx context.Context, userID string) (*models.WatchHistoryResponse, error) {
	if userID == "" {
		return nil, models.NewBadRequest("user id is required", models.ErrInvalidInput)
	}

	history, err := s.userRepo.GetHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.WatchHistoryResponse{Data: history}, nil
}
