package handlers

import (
	"errors"
	"net/http"
	"strings"

	"optiwatt/internal/service"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userId"

func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userId, err := h.services.Session.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// a token outlives Logout; the stored user is what keeps it valid
	u, err := h.services.Session.CurrentUser(c.Request.Context())
	if errors.Is(err, service.ErrNoSession) || (err == nil && u.ID != userId) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "session ended",
		})
		return
	}
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load session", "session_lookup_failed", err, "user_id", userId)
		c.Abort()
		return
	}

	// store in Gin context
	c.Set(userIDKey, userId)
	c.Next()
}
