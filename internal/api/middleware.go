package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nhle/personal-diary/internal/account"
)

// userIDKey is the gin context key holding the authenticated user id.
const userIDKey = "diary_user_id"

// basicAuth authenticates every request with HTTP basic credentials.
func (s *Server) basicAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="diary"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		user, err := s.accounts.Authenticate(c.Request.Context(), username, password)
		if err != nil {
			if errors.Is(err, account.ErrInvalidCredentials) {
				c.Header("WWW-Authenticate", `Basic realm="diary"`)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			s.logger.Error("authenticating", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Set(userIDKey, user.ID)
		c.Next()
	}
}

// currentUserID returns the id stored by basicAuth.
func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
