// Package core - Engagement Business Logic
// Applies like/dislike/view transitions, keeping the user's membership sets
// and the video's counters mutually consistent.
package core

import (
	"context"

	"vidhub/internal/repository"
	"vidhub/pkg/models"
)

// EngagementService applies engagement state transitions.
//
// Like and Dislike are toggles: applied twice in a row with no intervening
// opposing call, each reverses its own effect. A video is never in both the
// liked and disliked set of the same user.
type EngagementService interface {
	Like(ctx context.Context, userID, videoID string) (*models.VideoDTO, error)
	Dislike(ctx context.Context, userID, videoID string) (*models.VideoDTO, error)
	RecordView(ctx context.Context, userID, videoID string) (*models.Video, error)
}

type engagementService struct {
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
}

// NewEngagementService creates a new engagement service
func NewEngagementService(videoRepo repository.VideoRepository, userRepo repository.UserRepository) EngagementService {
	return &engagementService{
		videoRepo: videoRepo,
		userRepo:  userRepo,
	}
}

// membership is the user's engagement state for one video. Resolving both
// set memberships into a single three-way value up front means a transition
// can never leave the user in both sets.
type membership int

const (
	membershipNeither membership = iota
	membershipLiked
	membershipDisliked
)

func (s *engagementService) membershipFor(ctx context.Context, userID, videoID string) (membership, error) {
	liked, err := s.userRepo.IsLiked(ctx, userID, videoID)
	if err != nil {
		return membershipNeither, err
	}
	if liked {
		return membershipLiked, nil
	}
	disliked, err := s.userRepo.IsDisliked(ctx, userID, videoID)
	if err != nil {
		return membershipNeither, err
	}
	if disliked {
		return membershipDisliked, nil
	}
	return membershipNeither, nil
}

// Like applies the like transition:
//
//	neither  -> liked    (likes+1)
//	liked    -> neither  (likes-1)
//	disliked -> liked    (dislikes-1, likes+1)
//
// The user's sets are persisted first, then the video aggregate. A failure
// between the two surfaces as a persistence error and is not compensated;
// the cycle is not atomic across the two aggregates.
func (s *engagementService) Like(ctx context.Context, userID, videoID string) (*models.VideoDTO, error) {
	if userID == "" || videoID == "" {
		return nil, models.NewBadRequest("user id and video id are required", models.ErrInvalidInput)
	}

	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	state, err := s.membershipFor(ctx, userID, videoID)
	if err != nil {
		return nil, err
	}

	switch state {
	case membershipLiked:
		if err := s.userRepo.RemoveLiked(ctx, userID, videoID); err != nil {
			return nil, err
		}
		video.DecrementLikes()
	case membershipDisliked:
		if err := s.userRepo.RemoveDisliked(ctx, userID, videoID); err != nil {
			return nil, err
		}
		if err := s.userRepo.AddLiked(ctx, userID, videoID); err != nil {
			return nil, err
		}
		video.DecrementDislikes()
		video.IncrementLikes()
	default:
		if err := s.userRepo.AddLiked(ctx, userID, videoID); err != nil {
			return nil, err
		}
		video.IncrementLikes()
	}

	if err := s.videoRepo.Save(ctx, video); err != nil {
		return nil, err
	}
	return MapToVideoDTO(video), nil
}

// Dislike applies the symmetric transition:
//
//	neither  -> disliked (dislikes+1)
//	disliked -> neither  (dislikes-1)
//	liked    -> disliked (likes-1, dislikes+1)
func (s *engagementService) Dislike(ctx context.Context, userID, videoID string) (*models.VideoDTO, error) {
	if userID == "" || videoID == "" {
		return nil, models.NewBadRequest("user id and video id are required", models.ErrInvalidInput)
	}

	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	state, err := s.membershipFor(ctx, userID, videoID)
	if err != nil {
		return nil, err
	}

	switch state {
	case membershipDisliked:
		if err := s.userRepo.RemoveDisliked(ctx, userID, videoID); err != nil {
			return nil, err
		}
		video.DecrementDislikes()
	case membershipLiked:
		if err := s.userRepo.RemoveLiked(ctx, userID, videoID); err != nil {
			return nil, err
		}
		if err := s.userRepo.AddDisliked(ctx, userID, videoID); err != nil {
			return nil, err
		}
		video.DecrementLikes()
		video.IncrementDislikes()
	default:
		if err := s.userRepo.AddDisliked(ctx, userID, videoID); err != nil {
			return nil, err
		}
		video.IncrementDislikes()
	}

	if err := s.videoRepo.Save(ctx, video); err != nil {
		return nil, err
	}
	return MapToVideoDTO(video), nil
}

// RecordView unconditionally increments the view counter and appends the
// video to the user's watch history. No dedup: re-watching appends again.
func (s *engagementService) RecordView(ctx context.Context, userID, videoID string) (*models.Video, error) {
	if userID == "" || videoID == "" {
		return nil, models.NewBadRequest("user id and video id are required", models.ErrInvalidInput)
	}

	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	video.IncrementViews()
	if err := s.videoRepo.Save(ctx, video); err != nil {
		return nil, err
	}
	if err := s.userRepo.AppendHistory(ctx, userID, videoID); err != nil {
		return nil, err
	}
	return video, nil
}

// MapToVideoDTO maps a video aggregate to its API representation
func MapToVideoDTO(video *models.Video) *models.VideoDTO {
	tags := video.Tags
	if tags == nil {
		tags = []string{}
	}
	return &models.VideoDTO{
		ID:            video.ID,
		Title:         video.Title,
		Description:   video.Description,
		Tags:          tags,
		VideoURL:      video.VideoURL,
		ThumbnailURL:  video.ThumbnailURL,
		Status:        video.Status,
		ViewCount:     video.ViewCount,
		LikesCount:    video.LikesCount,
		DislikesCount: video.DislikesCount,
	}
}
