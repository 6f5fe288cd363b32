package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recruitedge-api/internal/shared/auth"
	"recruitedge-api/internal/shared/server/respond"
)

const (
	userIDKey = "userId"

	// AgentKey holds the slug of the agent serving the request.
	AgentKey = "agent"
	// ResourceIDKey holds the id of the record a handler touched.
	ResourceIDKey = "resourceId"
)

// Identity resolves the caller's userId. Authentication is stubbed: the id is
// read from the userId query parameter, the X-User-Id header, or the sub claim
// of a Bearer token, in that order.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		if userID := strings.TrimSpace(c.Query("userId")); userID != "" {
			c.Set(userIDKey, userID)
			c.Next()
			return
		}
		if userID := strings.TrimSpace(c.GetHeader("X-User-Id")); userID != "" {
			c.Set(userIDKey, userID)
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
			claims, err := auth.VerifyJWT(token)
			if err != nil {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}
			c.Set(userIDKey, claims.Sub)
			c.Next()
			return
		}

		respond.Error(c, http.StatusBadRequest, "validation_error", "userId is required", []respond.FieldIssue{
			{Field: "userId", Issue: "required"},
		})
	}
}

// UserIDFromContext fetches the user ID set by the identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// Agent tags the request with the serving agent slug for logs.
func Agent(slug string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(AgentKey, slug)
		c.Next()
	}
}
