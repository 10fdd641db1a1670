package tenants

import (
	"context"

	"factura/internal/core/id"
)

// Repository defines the interface for tenant registry persistence.
type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id id.ID) (*Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)
	List(ctx context.Context) ([]*Tenant, error)
	SetStatus(ctx context.Context, id id.ID, status Status) error
}
