package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TenantGuard returns middleware that ensures a usable tenant context is
// present. It relies on AuthMiddleware having already set the tenant_id.
func TenantGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		val, exists := c.Get(ContextKeyTenantID)
		if !exists {
			abortMissingTenant(c)
			return
		}
		tenantID, ok := val.(uuid.UUID)
		if !ok || tenantID == uuid.Nil {
			abortMissingTenant(c)
			return
		}
		c.Next()
	}
}

func abortMissingTenant(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   gin.H{"code": "UNAUTHORIZED", "message": "tenant context required"},
	})
}
