// Package middleware provides HTTP middleware components.
package middleware

import (
	"github.com/gin-gonic/gin"

	"factura/internal/core/security"
)

// UserContext builds the access scope from the authenticated user and makes
// it available to the domain layer via security.GetScope(ctx).
//
// This middleware must run AFTER Auth middleware.
func UserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ctx = security.WithScope(ctx, security.NewAccessScope(ctx))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
