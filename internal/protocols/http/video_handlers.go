package http

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"vidhub/pkg/models"
	"vidhub/pkg/utils"
)

// respondError maps an error to its HTTP status, keeping the kind's message
func respondError(c *gin.Context, err error) {
	status := models.StatusOf(err)
	msg := err.Error()
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	c.JSON(status, models.APIResponse{
		Success:   false,
		Error:     msg,
		Timestamp: time.Now(),
	})
}

// uploadVideo handles the video file upload
func (s *Server) uploadVideo(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "file is required",
			Timestamp: time.Now(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "failed to read file",
			Timestamp: time.Now(),
		})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	ctx, cancel := utils.WithUploadTimeout(c.Request.Context())
	defer cancel()

	resp, err := s.videoSvc.UploadVideo(ctx, file, fileHeader.Size, contentType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(201, models.APIResponse{
		Success:   true,
		Message:   "Video uploaded successfully",
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// uploadThumbnail handles the thumbnail upload for an existing video
func (s *Server) uploadThumbnail(c *gin.Context) {
	videoID := c.PostForm("videoId")
	if videoID == "" {
		videoID = c.Query("videoId")
	}
	if videoID == "" {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "videoId is required",
			Timestamp: time.Now(),
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "file is required",
			Timestamp: time.Now(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "failed to read file",
			Timestamp: time.Now(),
		})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	ctx, cancel := utils.WithUploadTimeout(c.Request.Context())
	defer cancel()

	thumbnailURL, err := s.videoSvc.UploadThumbnail(ctx, file, fileHeader.Size, contentType, videoID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(201, models.APIResponse{
		Success:   true,
		Message:   "Thumbnail uploaded successfully",
		Data:      gin.H{"thumbnail_url": thumbnailURL},
		Timestamp: time.Now(),
	})
}

// editVideo overwrites video metadata from the request body
func (s *Server) editVideo(c *gin.Context) {
	var dto models.VideoDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	updated, err := s.videoSvc.EditVideo(c.Request.Context(), dto)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Message:   "Video updated successfully",
		Data:      updated,
		Timestamp: time.Now(),
	})
}

// getVideoDetails returns a video, counting the view and appending it to
// the requesting user's watch history
func (s *Server) getVideoDetails(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		c.JSON(401, models.APIResponse{
			Success:   false,
			Error:     "unauthorized",
			Timestamp: time.Now(),
		})
		return
	}

	videoID := c.Param("videoId")

	video, err := s.videoSvc.GetVideoDetails(c.Request.Context(), videoID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      video,
		Timestamp: time.Now(),
	})
}

// listVideos returns every stored video
func (s *Server) listVideos(c *gin.Context) {
	result, err := s.videoSvc.ListVideos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      result,
		Timestamp: time.Now(),
	})
}

// getWatchHistory returns the authenticated user's watch history
func (s *Server) getWatchHistory(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		c.JSON(401, models.APIResponse{
			Success:   false,
			Error:     "unauthorized",
			Timestamp: time.Now(),
		})
		return
	}

	history, err := s.userSvc.GetWatchHistory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      history,
		Timestamp: time.Now(),
	})
}
