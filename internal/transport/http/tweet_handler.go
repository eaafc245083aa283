package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamverse/vidtube/internal/content"
	"github.com/streamverse/vidtube/internal/dto"
	"github.com/streamverse/vidtube/internal/transport/http/middleware"
)

type TweetHandler struct {
	svc content.TweetService
}

func NewTweetHandler(svc content.TweetService) *TweetHandler {
	return &TweetHandler{svc: svc}
}

func (h *TweetHandler) Create(c *gin.Context) {
	var body dto.ContentDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	tweet, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), body)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "tweet created", tweet)
}

func (h *TweetHandler) ListByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	var window dto.ListDTO
	if err := c.ShouldBindQuery(&window); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	page, err := h.svc.ListByUser(c.Request.Context(), userID, window.Page, window.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "user tweets", page)
}

func (h *TweetHandler) Update(c *gin.Context) {
	tweetID, ok := pathID(c, "tweetId")
	if !ok {
		return
	}

	var body dto.ContentDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	tweet, err := h.svc.Update(c.Request.Context(), middleware.UserID(c), tweetID, body)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "tweet updated", tweet)
}

func (h *TweetHandler) Delete(c *gin.Context) {
	tweetID, ok := pathID(c, "tweetId")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), middleware.UserID(c), tweetID); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "tweet deleted", nil)
}
