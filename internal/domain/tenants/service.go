package tenants

import (
	"context"
	"fmt"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/core/tx"
	"factura/pkg/logger"
)

// Service provides registry operations for tenants.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new tenant registry service.
func NewService(repo Repository, txm tx.Manager) *Service {
	return &Service{repo: repo, txManager: txm}
}

// Create registers a new tenant.
func (s *Service) Create(ctx context.Context, t *Tenant) error {
	if err := t.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetBySlug(ctx, t.Slug)
	if err != nil && !apperror.IsNotFound(err) {
		return err
	}
	if err == nil && existing != nil {
		return apperror.NewDuplicate("tenant", "slug", t.Slug)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, t); err != nil {
			return fmt.Errorf("create tenant: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "tenant registered", "id", t.ID, "slug", t.Slug)
	return nil
}

// GetByID retrieves a tenant by ID.
func (s *Service) GetByID(ctx context.Context, tenantID id.ID) (*Tenant, error) {
	t, err := s.repo.GetByID(ctx, tenantID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("tenant", tenantID.String())
		}
		return nil, err
	}
	return t, nil
}

// GetBySlug retrieves a tenant by its URL slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Tenant, error) {
	t, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("tenant", slug)
		}
		return nil, err
	}
	return t, nil
}

// List returns all registered tenants.
func (s *Service) List(ctx context.Context) ([]*Tenant, error) {
	return s.repo.List(ctx)
}

// RequireActive verifies the tenant exists and may use the API.
func (s *Service) RequireActive(ctx context.Context, tenantID id.ID) error {
	t, err := s.GetByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if !t.IsActive() {
		return apperror.NewForbidden("tenant is suspended").
			WithDetail("tenant_id", tenantID.String())
	}
	return nil
}

// Suspend blocks the tenant from using the API.
func (s *Service) Suspend(ctx context.Context, tenantID id.ID) error {
	return s.setStatus(ctx, tenantID, StatusSuspended)
}

// Activate re-enables a suspended tenant.
func (s *Service) Activate(ctx context.Context, tenantID id.ID) error {
	return s.setStatus(ctx, tenantID, StatusActive)
}

func (s *Service) setStatus(ctx context.Context, tenantID id.ID, status Status) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.SetStatus(ctx, tenantID, status)
	})
	if err != nil {
		return err
	}
	logger.Info(ctx, "tenant status changed", "id", tenantID, "status", status)
	return nil
}
