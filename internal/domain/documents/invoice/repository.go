package invoice

import (
	"context"

	"factura/internal/core/id"
	"factura/internal/domain"
)

// Repository defines the interface for Invoice persistence.
// Items are stored separately from the header; the service composes the
// two inside one transaction.
type Repository interface {
	// Create inserts the invoice header, stamping tenantID.
	Create(ctx context.Context, tenantID id.ID, inv *Invoice) error

	// GetByID retrieves the header by ID within the tenant.
	GetByID(ctx context.Context, tenantID, id id.ID) (*Invoice, error)

	// GetByNumber retrieves the header by invoice number within the tenant.
	GetByNumber(ctx context.Context, tenantID id.ID, number string) (*Invoice, error)

	// Update modifies the header within the tenant.
	Update(ctx context.Context, tenantID id.ID, inv *Invoice) error

	// Delete removes the invoice; items follow via ON DELETE CASCADE.
	Delete(ctx context.Context, tenantID, id id.ID) error

	// List retrieves invoice headers with filtering and pagination.
	List(ctx context.Context, tenantID id.ID, filter domain.ListFilter) (domain.ListResult[*Invoice], error)

	// GetItems loads the lines of one invoice ordered by line_no.
	GetItems(ctx context.Context, invoiceID id.ID) ([]Item, error)

	// SaveItems replaces the lines of one invoice.
	SaveItems(ctx context.Context, invoiceID id.ID, items []Item) error
}
