// Package tenant provides tenant identity propagation through context.
// The platform uses a shared schema: every tenant-owned row carries a
// tenant_id column and every query is scoped by it. The active tenant is
// resolved once per request (from the authenticated token) and carried in
// the context from there on.
package tenant

import (
	"context"
	"fmt"

	"factura/internal/core/id"
)

type tenantKey struct{}

// WithID stores the active tenant ID in the context.
func WithID(ctx context.Context, tenantID id.ID) context.Context {
	return context.WithValue(ctx, tenantKey{}, tenantID)
}

// GetID returns the active tenant ID, or false when none is set.
func GetID(ctx context.Context) (id.ID, bool) {
	v, ok := ctx.Value(tenantKey{}).(id.ID)
	if !ok || id.IsNil(v) {
		return id.Nil(), false
	}
	return v, true
}

// MustGetID returns the active tenant ID or panics.
// Use only below middleware that guarantees tenant resolution.
func MustGetID(ctx context.Context) id.ID {
	v, ok := GetID(ctx)
	if !ok {
		panic(fmt.Errorf("tenant: no tenant in context"))
	}
	return v
}
