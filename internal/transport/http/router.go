// Package http is the REST surface of the service. Every response uses the
// uniform envelope from response.go; authenticated routes go through
// middleware.RequireAuth.
package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/streamverse/vidtube/internal/auth"
	"github.com/streamverse/vidtube/internal/config"
	"github.com/streamverse/vidtube/internal/content"
	"github.com/streamverse/vidtube/internal/transport/http/middleware"
)

// NewRouter wires middleware and all route groups under /api/v1.
func NewRouter(cfg *config.Config, log *zap.Logger, authSvc auth.Service, svcs content.Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.NewRateLimitPerIP(50, 100, 10000, 10*time.Minute))

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowCredentials = cfg.AllowCredentials && !corsCfg.AllowAllOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authH := NewAuthHandler(authSvc, cfg.CookieDomain)
	videoH := NewVideoHandler(svcs.Videos)
	commentH := NewCommentHandler(svcs.Comments)
	tweetH := NewTweetHandler(svcs.Tweets)
	playlistH := NewPlaylistHandler(svcs.Playlists)
	likeH := NewLikeHandler(svcs.Likes)

	requireAuth := middleware.RequireAuth(authSvc)

	v1 := r.Group("/api/v1")

	users := v1.Group("/users")
	{
		users.POST("/register", authH.Register)
		users.POST("/login", authH.Login)
		users.POST("/refresh-token", authH.Refresh)

		users.POST("/logout", requireAuth, authH.Logout)
		users.GET("/current-user", requireAuth, authH.CurrentUser)
		users.POST("/change-password", requireAuth, authH.ChangePassword)
		users.PATCH("/update-account", requireAuth, authH.UpdateAccount)
		users.PATCH("/avatar", requireAuth, authH.UpdateAvatar)
		users.PATCH("/cover-image", requireAuth, authH.UpdateCoverImage)

		users.GET("/:userId/tweets", tweetH.ListByUser)
	}

	videos := v1.Group("/videos")
	{
		videos.GET("", videoH.List)
		videos.GET("/:videoId", videoH.Get)
		videos.GET("/:videoId/comments", commentH.ListByVideo)

		videos.POST("", requireAuth, videoH.Publish)
		videos.PATCH("/:videoId", requireAuth, videoH.Update)
		videos.DELETE("/:videoId", requireAuth, videoH.Delete)
		videos.PATCH("/:videoId/toggle-publish", requireAuth, videoH.TogglePublish)
		videos.POST("/:videoId/comments", requireAuth, commentH.Add)
	}

	comments := v1.Group("/comments", requireAuth)
	{
		comments.PATCH("/:commentId", commentH.Update)
		comments.DELETE("/:commentId", commentH.Delete)
	}

	tweets := v1.Group("/tweets", requireAuth)
	{
		tweets.POST("", tweetH.Create)
		tweets.PATCH("/:tweetId", tweetH.Update)
		tweets.DELETE("/:tweetId", tweetH.Delete)
	}

	playlists := v1.Group("/playlists")
	{
		playlists.GET("/:playlistId", playlistH.Get)
		playlists.GET("/user/:userId", playlistH.ListByUser)

		playlists.POST("", requireAuth, playlistH.Create)
		playlists.PATCH("/:playlistId", requireAuth, playlistH.Update)
		playlists.DELETE("/:playlistId", requireAuth, playlistH.Delete)
		playlists.PATCH("/:playlistId/videos/:videoId", requireAuth, playlistH.AddVideo)
		playlists.DELETE("/:playlistId/videos/:videoId", requireAuth, playlistH.RemoveVideo)
	}

	likes := v1.Group("/likes", requireAuth)
	{
		likes.POST("/toggle/video/:videoId", likeH.ToggleVideo)
		likes.POST("/toggle/comment/:commentId", likeH.ToggleComment)
		likes.POST("/toggle/tweet/:tweetId", likeH.ToggleTweet)
		likes.GET("/videos", likeH.LikedVideos)
	}

	return r
}
