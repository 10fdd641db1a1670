package customer

import (
	"context"

	"factura/internal/core/id"
	"factura/internal/domain"
)

// Repository defines the interface for Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]

	// FindByEmail retrieves customer by email (unique within tenant).
	FindByEmail(ctx context.Context, tenantID id.ID, email string) (*Customer, error)

	// GetForUpdate retrieves customer with row lock (for transactional updates).
	GetForUpdate(ctx context.Context, tenantID, id id.ID) (*Customer, error)
}
