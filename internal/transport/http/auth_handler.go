package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/streamverse/vidtube/internal/auth"
	"github.com/streamverse/vidtube/internal/domain"
	"github.com/streamverse/vidtube/internal/dto"
	"github.com/streamverse/vidtube/internal/transport/http/middleware"
)

type AuthHandler struct {
	svc          auth.Service
	cookieDomain string
}

func NewAuthHandler(svc auth.Service, cookieDomain string) *AuthHandler {
	return &AuthHandler{svc: svc, cookieDomain: cookieDomain}
}

// setAuthCookies delivers both tokens as httpOnly+secure cookies so page
// scripts cannot read them and they only travel over TLS.
func (h *AuthHandler) setAuthCookies(c *gin.Context, pair domain.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("accessToken", pair.AccessToken, int(pair.AccessTTL.Seconds()), "/", h.cookieDomain, true, true)

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("refreshToken", pair.RefreshToken, int(pair.RefreshTTL.Seconds()), "/", h.cookieDomain, true, true)
}

func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", h.cookieDomain, true, true)
	c.SetCookie("refreshToken", "", -1, "/", h.cookieDomain, true, true)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	user, err := h.svc.Register(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "user created successfully", user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	user, pair, err := h.svc.Login(c.Request.Context(), body, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	h.setAuthCookies(c, pair)
	respond(c, http.StatusOK, "user logged in successfully", gin.H{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	h.clearAuthCookies(c)
	respond(c, http.StatusOK, "user logged out", nil)
}

// Refresh reads the refresh token from the cookie first, then from the body,
// and answers with a rotated pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	presented, _ := c.Cookie("refreshToken")
	if presented == "" {
		var body dto.RefreshDTO
		if err := c.ShouldBindJSON(&body); err == nil {
			presented = body.RefreshToken
		}
	}

	pair, err := h.svc.Refresh(c.Request.Context(), presented)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setAuthCookies(c, pair)
	respond(c, http.StatusOK, "access token refreshed", gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user, err := h.svc.CurrentUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "current user fetched", user)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var body dto.ChangePasswordDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), middleware.UserID(c), body); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "password changed successfully", nil)
}

func (h *AuthHandler) UpdateAccount(c *gin.Context) {
	var body dto.UpdateAccountDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	user, err := h.svc.UpdateAccount(c.Request.Context(), middleware.UserID(c), body)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "account details updated", user)
}

func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, h.svc.UpdateAvatar)
}

func (h *AuthHandler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, h.svc.UpdateCoverImage)
}

func (h *AuthHandler) updateImage(c *gin.Context, update func(ctx context.Context, userID uuid.UUID, url string) (domain.PublicUser, error)) {
	var body dto.UpdateImageDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	user, err := update(c.Request.Context(), middleware.UserID(c), body.URL)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "image updated successfully", user)
}
