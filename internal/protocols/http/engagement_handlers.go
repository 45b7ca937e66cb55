package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"vidhub/pkg/models"
)

// likeVideo toggles the authenticated user's like on a video
func (s *Server) likeVideo(c *gin.Context) {
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

	video, err := s.engagementSvc.Like(c.Request.Context(), userID, videoID)
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

// dislikeVideo toggles the authenticated user's dislike on a video
func (s *Server) dislikeVideo(c *gin.Context) {
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

	video, err := s.engagementSvc.Dislike(c.Request.Context(), userID, videoID)
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
