package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salespipe/internal/models"
)

// Requester pulls the authenticated profile set by AuthMiddleware.
func Requester(c *gin.Context) (models.UserProfile, bool) {
	v, exists := c.Get("requester")
	if !exists {
		return models.UserProfile{}, false
	}
	u, ok := v.(models.UserProfile)
	return u, ok
}

func RequireRoles(allowed ...string) gin.HandlerFunc {
	allowedSet := map[string]struct{}{}
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}
	return func(c *gin.Context) {
		u, ok := Requester(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no requester in context"})
			return
		}
		if _, ok := allowedSet[u.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
