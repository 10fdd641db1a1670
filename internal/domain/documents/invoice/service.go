package invoice

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/core/tx"
	"factura/internal/domain"
	"factura/internal/domain/sequence"
	"factura/pkg/logger"
)

// CustomerChecker verifies that a customer exists within a tenant.
// Satisfied by customer.Repository.
type CustomerChecker interface {
	Exists(ctx context.Context, tenantID, id id.ID) (bool, error)
}

// UpdateInput carries the only mutable invoice fields. Number, customer
// and totals are fixed at creation time.
type UpdateInput struct {
	Status  *Status
	DueDate *time.Time
	Notes   *string
}

// Service provides business operations for invoices.
type Service struct {
	repo      Repository
	customers CustomerChecker
	seq       sequence.Generator
	txManager tx.Manager
	policy    *TransitionPolicy
	hooks     *domain.HookRegistry[*Invoice]
}

// NewService creates a new invoice service.
func NewService(
	repo Repository,
	customers CustomerChecker,
	seq sequence.Generator,
	txManager tx.Manager,
	policy *TransitionPolicy,
) *Service {
	if policy == nil {
		policy = MustTransitionPolicy(PermissiveTransitionExpr)
	}
	return &Service{
		repo:      repo,
		customers: customers,
		seq:       seq,
		txManager: txManager,
		policy:    policy,
		hooks:     domain.NewHookRegistry[*Invoice](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Invoice] {
	return s.hooks
}

// Create persists the invoice aggregate atomically. Number assignment,
// header insert and item inserts run in one transaction; on any failure
// nothing is stored and the sequence increment is rolled back with it.
func (s *Service) Create(ctx context.Context, tenantID id.ID, inv *Invoice) error {
	// Run before-create hooks (for enrichment, validation, etc.)
	if err := s.hooks.RunBeforeCreate(ctx, inv); err != nil {
		return err
	}

	// Validate
	if err := inv.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Customer must exist in this tenant.
		exists, err := s.customers.Exists(ctx, tenantID, inv.CustomerID)
		if err != nil {
			return fmt.Errorf("check customer: %w", err)
		}
		if !exists {
			return apperror.NewNotFound("customer", inv.CustomerID.String())
		}

		// Number is drawn inside the transaction so a rollback returns it.
		value, err := s.seq.NextValue(ctx, tenantID, sequence.InvoiceSequence)
		if err != nil {
			return fmt.Errorf("next invoice number: %w", err)
		}
		inv.InvoiceNumber = "INV-" + strconv.FormatInt(value, 10)

		if err := s.repo.Create(ctx, tenantID, inv); err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}

		if err := s.repo.SaveItems(ctx, inv.ID, inv.Items); err != nil {
			return fmt.Errorf("save items: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	// Run after-create hooks
	if err := s.hooks.RunAfterCreate(ctx, inv); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "invoice created",
		"id", inv.ID,
		"number", inv.InvoiceNumber,
		"total", inv.TotalAmount)

	return nil
}

// GetByID retrieves an invoice with its items.
func (s *Service) GetByID(ctx context.Context, tenantID, invoiceID id.ID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetItems(ctx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	inv.Items = items

	return inv, nil
}

// GetByNumber retrieves an invoice by its number with items.
func (s *Service) GetByNumber(ctx context.Context, tenantID id.ID, number string) (*Invoice, error) {
	inv, err := s.repo.GetByNumber(ctx, tenantID, number)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetItems(ctx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	inv.Items = items

	return inv, nil
}

// Update applies the mutable fields. Status changes go through the
// transition policy; moving to paid stamps PaidAt.
func (s *Service) Update(ctx context.Context, tenantID, invoiceID id.ID, input UpdateInput) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	if input.Status != nil && *input.Status != inv.Status {
		if !input.Status.IsValid() {
			return nil, apperror.NewValidation("invalid status").
				WithDetail("field", "status").
				WithDetail("value", string(*input.Status))
		}
		if err := s.policy.Check(inv.Status, *input.Status); err != nil {
			return nil, err
		}
		inv.Status = *input.Status
		if inv.Status == StatusPaid && inv.PaidAt == nil {
			now := time.Now().UTC()
			inv.PaidAt = &now
		}
	}

	if input.DueDate != nil {
		inv.DueDate = input.DueDate
	}
	if input.Notes != nil {
		inv.Notes = input.Notes
	}

	if err := s.hooks.RunBeforeUpdate(ctx, inv); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, tenantID, inv); err != nil {
			return fmt.Errorf("update invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.hooks.RunAfterUpdate(ctx, inv); err != nil {
		logger.Warn(ctx, "after-update hook failed", "error", err)
	}

	items, err := s.repo.GetItems(ctx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	inv.Items = items

	return inv, nil
}

// Delete removes the invoice; items follow via cascade.
func (s *Service) Delete(ctx context.Context, tenantID, invoiceID id.ID) error {
	inv, err := s.repo.GetByID(ctx, tenantID, invoiceID)
	if err != nil {
		return err
	}

	if err := s.hooks.RunBeforeDelete(ctx, inv); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, tenantID, invoiceID)
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterDelete(ctx, inv); err != nil {
		logger.Warn(ctx, "after-delete hook failed", "error", err)
	}

	logger.Info(ctx, "invoice deleted", "id", invoiceID, "number", inv.InvoiceNumber)
	return nil
}

// List retrieves invoice headers with filtering.
func (s *Service) List(ctx context.Context, tenantID id.ID, filter domain.ListFilter) (domain.ListResult[*Invoice], error) {
	filter.Normalize()
	if filter.OrderBy == "" {
		filter.OrderBy = "-issue_date"
	}
	return s.repo.List(ctx, tenantID, filter)
}
