// Package core - Video Business Logic
// Upload plumbing and catalog operations.
package core

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"vidhub/internal/repository"
	"vidhub/internal/storage"
	"vidhub/pkg/models"
)

// VideoService defines video catalog and upload operations
type VideoService interface {
	UploadVideo(ctx context.Context, r io.Reader, size int64, contentType string) (*models.UploadVideoResponse, error)
	UploadThumbnail(ctx context.Context, r io.Reader, size int64, contentType, videoID string) (string, error)
	EditVideo(ctx context.Context, dto models.VideoDTO) (*models.VideoDTO, error)
	GetVideoDetails(ctx context.Context, videoID, userID string) (*models.VideoDTO, error)
	ListVideos(ctx context.Context) (*models.VideoListResponse, error)
	AddComment(ctx context.Context, videoID, userID string, req models.CreateCommentRequest) error
	ListComments(ctx context.Context, videoID string) (*models.CommentListResponse, error)
}

type videoService struct {
	videoRepo     repository.VideoRepository
	objectStore   storage.ObjectStore
	engagementSvc EngagementService
}

// NewVideoService creates a new video service
func NewVideoService(videoRepo repository.VideoRepository, objectStore storage.ObjectStore, engagementSvc EngagementService) VideoService {
	return &videoService{
		videoRepo:     videoRepo,
		objectStore:   objectStore,
		engagementSvc: engagementSvc,
	}
}

// UploadVideo stores the file and creates a video record carrying only the
// resulting URL. Metadata arrives later through EditVideo.
func (s *videoService) UploadVideo(ctx context.Context, r io.Reader, size int64, contentType string) (*models.UploadVideoResponse, error) {
	if r == nil || size <= 0 {
		return nil, models.NewBadRequest("file is required", models.ErrInvalidInput)
	}

	videoURL, err := s.objectStore.Upload(ctx, r, size, contentType)
	if err != nil {
		return nil, err
	}

	video := &models.Video{
		ID:        uuid.New().String(),
		Tags:      []string{},
		VideoURL:  videoURL,
		Status:    string(models.VideoStatusProcessing),
		CreatedAt: time.Now(),
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}

	return &models.UploadVideoResponse{
		ID:       video.ID,
		VideoURL: video.VideoURL,
	}, nil
}

// UploadThumbnail stores a thumbnail and attaches it to an existing video.
// The video is looked up first: a missing video fails before any object is
// written, so no orphan object gets referenced.
func (s *videoService) UploadThumbnail(ctx context.Context, r io.Reader, size int64, contentType, videoID string) (string, error) {
	if videoID == "" {
		return "", models.NewBadRequest("video id is required", models.ErrInvalidInput)
	}
	if r == nil || size <= 0 {
		return "", models.NewBadRequest("file is required", models.ErrInvalidInput)
	}

	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return "", err
	}

	thumbnailURL, err := s.objectStore.Upload(ctx, r, size, contentType)
	if err != nil {
		return "", err
	}

	video.ThumbnailURL = thumbnailURL
	if err := s.videoRepo.Save(ctx, video); err != nil {
		return "", err
	}
	return thumbnailURL, nil
}

// EditVideo overwrites the video's metadata from the DTO. The video URL is
// never touched; counters are owned by the engagement transitions.
func (s *videoService) EditVideo(ctx context.Context, dto models.VideoDTO) (*models.VideoDTO, error) {
	if dto.ID == "" {
		return nil, models.NewBadRequest("video id is required", models.ErrInvalidInput)
	}
	if dto.Status != "" && !models.IsValidVideoStatus(dto.Status) {
		return nil, models.NewBadRequest("invalid status: must be one of [private, public, processing]", models.ErrInvalidInput)
	}

	video, err := s.videoRepo.GetByID(ctx, dto.ID)
	if err != nil {
		return nil, err
	}

	video.Title = dto.Title
	video.Description = dto.Description
	video.Tags = dto.Tags
	if video.Tags == nil {
		video.Tags = []string{}
	}
	video.ThumbnailURL = dto.ThumbnailURL
	if dto.Status != "" {
		video.Status = dto.Status
	}

	if err := s.videoRepo.Save(ctx, video); err != nil {
		return nil, err
	}
	return MapToVideoDTO(video), nil
}

// GetVideoDetails returns a video, counting the view and appending it to
// the requesting user's watch history.
func (s *videoService) GetVideoDetails(ctx context.Context, videoID, userID string) (*models.VideoDTO, error) {
	video, err := s.engagementSvc.RecordView(ctx, userID, videoID)
	if err != nil {
		return nil, err
	}
	return MapToVideoDTO(video), nil
}

// ListVideos returns every stored video
func (s *videoService) ListVideos(ctx context.Context) (*models.VideoListResponse, error) {
	videos, err := s.videoRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.VideoDTO, 0, len(videos))
	for i := range videos {
		out = append(out, *MapToVideoDTO(&videos[i]))
	}
	return &models.VideoListResponse{
		Data:  out,
		Total: len(out),
	}, nil
}

// AddComment appends a comment to a video. The author defaults to the
// authenticated user when the request names none.
func (s *videoService) AddComment(ctx context.Context, videoID, userID string, req models.CreateCommentRequest) error {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return models.NewBadRequest("text is required", models.ErrInvalidInput)
	}
	if len(text) > models.MaxCommentLength {
		return models.NewBadRequest("text exceeds maximum length", models.ErrInvalidInput)
	}

	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return err
	}

	authorID := req.AuthorID
	if authorID == "" {
		authorID = userID
	}

	comment := &models.Comment{
		VideoID:   videoID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	return s.videoRepo.AddComment(ctx, comment)
}

// ListComments returns a video's comments in append order
func (s *videoService) ListComments(ctx context.Context, videoID string) (*models.CommentListResponse, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return nil, err
	}

	comments, err := s.videoRepo.ListComments(ctx, videoID)
	if err != nil {
		return nil, err
	}

	out := make([]models.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		out = append(out, models.CommentDTO{
			Text:     comment.Text,
			AuthorID: comment.AuthorID,
		})
	}
	return &models.CommentListResponse{
		Data:  out,
		Total: len(out),
	}, nil
}
