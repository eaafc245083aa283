package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamverse/vidtube/internal/content"
	"github.com/streamverse/vidtube/internal/dto"
	"github.com/streamverse/vidtube/internal/transport/http/middleware"
)

type PlaylistHandler struct {
	svc content.PlaylistService
}

func NewPlaylistHandler(svc content.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{svc: svc}
}

func (h *PlaylistHandler) Create(c *gin.Context) {
	var body dto.PlaylistDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	playlist, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), body)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "playlist created", playlist)
}

func (h *PlaylistHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "playlistId")
	if !ok {
		return
	}

	playlist, videos, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "playlist found", gin.H{
		"playlist": playlist,
		"videos":   videos,
	})
}

func (h *PlaylistHandler) ListByUser(c *gin.Context) {
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
	respond(c, http.StatusOK, "user playlists", page)
}

func (h *PlaylistHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "playlistId")
	if !ok {
		return
	}

	var body dto.PlaylistDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	playlist, err := h.svc.Update(c.Request.Context(), middleware.UserID(c), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "playlist updated", playlist)
}

func (h *PlaylistHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "playlistId")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "playlist deleted", nil)
}

func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	if err := h.svc.AddVideo(c.Request.Context(), middleware.UserID(c), playlistID, videoID); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "video added to playlist", nil)
}

func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	if err := h.svc.RemoveVideo(c.Request.Context(), middleware.UserID(c), playlistID, videoID); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "video removed from playlist", nil)
}
