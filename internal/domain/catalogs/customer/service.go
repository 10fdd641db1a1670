package customer

import (
	"context"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/core/tx"
	"factura/internal/domain"
)

// Service provides business logic for Customer catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Customer] // Embedded for delegation
	repo                              Repository
}

// NewService creates a new Customer service.
func NewService(repo Repository, txm tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "customer",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	// Register hooks for entity-specific logic
	base.Hooks().OnBeforeCreate(svc.checkEmailUnique)
	base.Hooks().OnBeforeUpdate(svc.checkEmailUnique)

	return svc
}

// checkEmailUnique rejects a second customer with the same email in the
// tenant. Advisory only: the partial unique index on (tenant_id, email) is
// the real guarantee, this hook just produces a friendlier error.
func (s *Service) checkEmailUnique(ctx context.Context, c *Customer) error {
	if c.Email == nil || *c.Email == "" {
		return nil
	}

	existing, err := s.repo.FindByEmail(ctx, c.TenantID, *c.Email)
	if err != nil {
		// Not found is OK; other errors must be propagated (DB errors, timeouts, etc.).
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != c.ID {
		return apperror.NewDuplicate("customer", "email", *c.Email)
	}
	return nil
}

// --- Entity-specific methods (not in base CatalogService) ---

// FindByEmail retrieves customer by email within the tenant.
func (s *Service) FindByEmail(ctx context.Context, tenantID id.ID, email string) (*Customer, error) {
	return s.repo.FindByEmail(ctx, tenantID, email)
}
