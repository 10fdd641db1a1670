package middleware

import (
	"github.com/gin-gonic/gin"

	"factura/internal/core/apperror"
	"factura/internal/core/tenant"
	"factura/internal/domain/tenants"
)

// RequireActiveTenant verifies that the tenant carried by the token still
// exists and is not suspended. Must run after Auth.
func RequireActiveTenant(registry *tenants.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		tenantID, ok := tenant.GetID(ctx)
		if !ok {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		if err := registry.RequireActive(ctx, tenantID); err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Next()
	}
}
