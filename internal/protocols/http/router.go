package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"vidhub/internal/core"
	"vidhub/pkg/config"
)

// Server manages the HTTP REST API server
type Server struct {
	router        *gin.Engine
	config        *config.Config
	authSvc       core.AuthService
	videoSvc      core.VideoService
	engagementSvc core.EngagementService
	userSvc       core.UserService
}

// NewServer creates a new HTTP server with all handlers
func NewServer(
	cfg *config.Config,
	authSvc core.AuthService,
	videoSvc core.VideoService,
	engagementSvc core.EngagementService,
	userSvc core.UserService,
) *Server {
	// Set Gin to release mode by default
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(RequestLogger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	s := &Server{
		router:        router,
		config:        cfg,
		authSvc:       authSvc,
		videoSvc:      videoSvc,
		engagementSvc: engagementSvc,
		userSvc:       userSvc,
	}

	s.setupRoutes()
	return s
}

// setupRoutes registers all HTTP routes. Everything under /api requires a
// valid bearer token; the session model is stateless.
func (s *Server) setupRoutes() {
	// Health check (public)
	s.router.GET("/health", s.healthCheck)

	api := s.router.Group("/api",
		RateLimitMiddleware(s.config.RateLimit.RequestsPerSecond, s.config.RateLimit.Burst),
		AuthMiddleware(s.authSvc),
	)

	videos := api.Group("/videos")
	{
		videos.POST("", s.uploadVideo)                    // upload video file
		videos.POST("/thumbnail", s.uploadThumbnail)      // upload thumbnail
		videos.PUT("", s.editVideo)                       // edit metadata
		videos.GET("", s.listVideos)                      // list all videos
		videos.GET("/history", s.getWatchHistory)         // current user's history
		videos.GET("/:videoId", s.getVideoDetails)        // details + view + history
		videos.POST("/:videoId/like", s.likeVideo)        // toggle like
		videos.POST("/:videoId/disLike", s.dislikeVideo)  // toggle dislike
		videos.POST("/:videoId/comment", s.addComment)    // add comment
		videos.GET("/:videoId/comment", s.listComments)   // list comments
	}
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}

// Router returns the gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// healthCheck returns server health status
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
