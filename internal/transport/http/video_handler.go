package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/streamverse/vidtube/internal/content"
	"github.com/streamverse/vidtube/internal/dto"
	"github.com/streamverse/vidtube/internal/transport/http/middleware"
)

type VideoHandler struct {
	svc content.VideoService
}

func NewVideoHandler(svc content.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// pathID parses a uuid path parameter, answering 400 before any storage
// access when the value is malformed.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respond(c, http.StatusBadRequest, "invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *VideoHandler) List(c *gin.Context) {
	var query dto.ListVideosDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	page, err := h.svc.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "videos fetched successfully", page)
}

func (h *VideoHandler) Publish(c *gin.Context) {
	var body dto.PublishVideoDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	video, err := h.svc.Publish(c.Request.Context(), middleware.UserID(c), body)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "video published successfully", video)
}

func (h *VideoHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	video, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "video fetched successfully", video)
}

func (h *VideoHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	var body dto.UpdateVideoDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	video, err := h.svc.Update(c.Request.Context(), middleware.UserID(c), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "video updated successfully", video)
}

func (h *VideoHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "video deleted successfully", nil)
}

func (h *VideoHandler) TogglePublish(c *gin.Context) {
	id, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	video, err := h.svc.TogglePublish(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "video publish status updated", video)
}
