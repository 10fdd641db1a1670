package product

import (
	"context"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/core/tx"
	"factura/internal/domain"
)

// Service provides business logic for Product catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Product] // Embedded for delegation
	repo                             Repository
}

// NewService creates a new Product service.
func NewService(repo Repository, txm tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	// Register hooks for entity-specific logic
	base.Hooks().OnBeforeCreate(svc.checkSKUUnique)
	base.Hooks().OnBeforeUpdate(svc.checkSKUUnique)

	return svc
}

// checkSKUUnique rejects a second product with the same SKU in the tenant.
// Advisory only: the unique index on (tenant_id, sku) is the real guarantee.
func (s *Service) checkSKUUnique(ctx context.Context, p *Product) error {
	existing, err := s.repo.FindBySKU(ctx, p.TenantID, p.SKU)
	if err != nil {
		// Not found is OK; other errors must be propagated (DB errors, timeouts, etc.).
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != p.ID {
		return apperror.NewDuplicate("product", "sku", p.SKU)
	}
	return nil
}

// --- Entity-specific methods (not in base CatalogService) ---

// FindBySKU retrieves product by SKU within the tenant.
func (s *Service) FindBySKU(ctx context.Context, tenantID id.ID, sku string) (*Product, error) {
	return s.repo.FindBySKU(ctx, tenantID, sku)
}
