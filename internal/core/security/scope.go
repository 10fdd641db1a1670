// Package security provides authorization and access control.
package security

import (
	"context"

	appctx "factura/internal/core/context"
	"factura/internal/core/id"
)

// AccessScope defines the boundaries of data visibility for the current
// request. It is derived from the authenticated token and used for
// authorization decisions and for consistent logging/audit context.
type AccessScope struct {
	// TenantID is the current tenant (from JWT).
	TenantID id.ID

	// UserID is the authenticated user
	UserID string

	// IsAdmin allows cross-tenant administrative routes
	IsAdmin bool
}

// NewAccessScope creates AccessScope from context.
func NewAccessScope(ctx context.Context) *AccessScope {
	user := appctx.GetUser(ctx)
	if user == nil {
		return &AccessScope{}
	}

	tenantID, _ := id.Parse(user.TenantID)
	return &AccessScope{
		TenantID: tenantID,
		UserID:   user.UserID,
		IsAdmin:  user.IsAdmin,
	}
}

// --- Context-based scope access ---

type scopeKey struct{}

// WithScope adds AccessScope to context.
func WithScope(ctx context.Context, scope *AccessScope) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// GetScope returns AccessScope from context.
func GetScope(ctx context.Context) *AccessScope {
	if v, ok := ctx.Value(scopeKey{}).(*AccessScope); ok {
		return v
	}
	return NewAccessScope(ctx)
}
