package product

import (
	"context"

	"factura/internal/core/id"
	"factura/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// FindBySKU retrieves product by SKU (unique within tenant).
	FindBySKU(ctx context.Context, tenantID id.ID, sku string) (*Product, error)

	// GetForUpdate retrieves product with row lock (for stock adjustments).
	GetForUpdate(ctx context.Context, tenantID, id id.ID) (*Product, error)
}
