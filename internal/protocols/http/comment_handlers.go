package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"vidhub/pkg/models"
)

// addComment appends a comment to a video
func (s *Server) addComment(c *gin.Context) {
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

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	if err := s.videoSvc.AddComment(c.Request.Context(), videoID, userID, req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Message:   "Comment added successfully",
		Timestamp: time.Now(),
	})
}

// listComments returns a video's comments in append order
func (s *Server) listComments(c *gin.Context) {
	videoID := c.Param("videoId")

	result, err := s.videoSvc.ListComments(c.Request.Context(), videoID)
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
