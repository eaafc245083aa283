package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamverse/vidtube/internal/apperr"
)

// Envelope is the single response shape for success and failure, so clients
// discriminate on the success flag rather than the status code alone.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
	Data       any    `json:"data,omitempty"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		StatusCode: status,
		Message:    message,
		Success:    status < 400,
		Data:       data,
	})
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case apperr.IsInvalidArgument(err):
		status, message = http.StatusBadRequest, err.Error()
	case apperr.IsTokenReused(err):
		status, message = http.StatusUnauthorized, "refresh token expired or already used"
	case apperr.IsInvalidToken(err):
		status, message = http.StatusUnauthorized, "invalid token"
	case apperr.IsInvalidCredentials(err):
		status, message = http.StatusUnauthorized, "invalid credentials"
	case apperr.IsNotFound(err):
		status, message = http.StatusNotFound, err.Error()
	case apperr.IsAlreadyExists(err):
		status, message = http.StatusConflict, err.Error()
	case apperr.IsTooManyAttempts(err):
		status, message = http.StatusTooManyRequests, err.Error()
	}

	_ = c.Error(err)
	respond(c, status, message, nil)
}
