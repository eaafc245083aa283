package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/streamverse/vidtube/internal/content"
	"github.com/streamverse/vidtube/internal/dto"
	"github.com/streamverse/vidtube/internal/transport/http/middleware"
)

type LikeHandler struct {
	svc content.LikeService
}

func NewLikeHandler(svc content.LikeService) *LikeHandler {
	return &LikeHandler{svc: svc}
}

func (h *LikeHandler) ToggleVideo(c *gin.Context) {
	h.toggle(c, "videoId", h.svc.ToggleVideo)
}

func (h *LikeHandler) ToggleComment(c *gin.Context) {
	h.toggle(c, "commentId", h.svc.ToggleComment)
}

func (h *LikeHandler) ToggleTweet(c *gin.Context) {
	h.toggle(c, "tweetId", h.svc.ToggleTweet)
}

func (h *LikeHandler) toggle(c *gin.Context, param string, fn func(ctx context.Context, userID, targetID uuid.UUID) (bool, error)) {
	id, ok := pathID(c, param)
	if !ok {
		return
	}

	liked, err := fn(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "like toggled", gin.H{"liked": liked})
}

func (h *LikeHandler) LikedVideos(c *gin.Context) {
	var window dto.ListDTO
	if err := c.ShouldBindQuery(&window); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	page, err := h.svc.LikedVideos(c.Request.Context(), middleware.UserID(c), window.Page, window.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "liked videos", page)
}
