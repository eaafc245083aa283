package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const userIDKey = "userID"

// AccessValidator is the stateless access-token check of the auth service.
type AccessValidator interface {
	ValidateAccess(token string) (uuid.UUID, error)
}

// RequireAuth reads the access token from the accessToken cookie or a
// Bearer header and aborts with 401 when it does not verify. The check is
// signature and expiry only; no storage is touched.
func RequireAuth(validator AccessValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie("accessToken")
		if err != nil || raw == "" {
			header := c.GetHeader("Authorization")
			if after, found := strings.CutPrefix(header, "Bearer "); found {
				raw = after
			}
		}

		uid, err := validator.ValidateAccess(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"statusCode": http.StatusUnauthorized,
				"message":    "unauthorized request",
				"success":    false,
			})
			return
		}

		c.Set(userIDKey, uid)
		c.Next()
	}
}

// UserID returns the authenticated caller set by RequireAuth.
func UserID(c *gin.Context) uuid.UUID {
	return c.MustGet(userIDKey).(uuid.UUID)
}
