package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamverse/vidtube/internal/content"
	"github.com/streamverse/vidtube/internal/dto"
	"github.com/streamverse/vidtube/internal/transport/http/middleware"
)

type CommentHandler struct {
	svc content.CommentService
}

func NewCommentHandler(svc content.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	var window dto.ListDTO
	if err := c.ShouldBindQuery(&window); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	page, err := h.svc.ListByVideo(c.Request.Context(), videoID, window.Page, window.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "comments retrieved", page)
}

func (h *CommentHandler) Add(c *gin.Context) {
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	var body dto.ContentDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	comment, err := h.svc.Add(c.Request.Context(), middleware.UserID(c), videoID, body)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "comment added", comment)
}

func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	var body dto.ContentDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	comment, err := h.svc.Update(c.Request.Context(), middleware.UserID(c), commentID, body)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "comment updated", comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), middleware.UserID(c), commentID); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "comment deleted", nil)
}
