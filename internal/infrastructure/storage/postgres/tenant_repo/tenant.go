// Package tenant_repo provides the PostgreSQL implementation of the tenant
// registry. Tenants are global rows, so queries here carry no tenant_id
// predicate.
package tenant_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/domain/tenants"
	"factura/internal/infrastructure/storage/postgres"
)

// TenantRepo implements tenants.Repository.
type TenantRepo struct {
	txm *postgres.TxManager
}

// NewTenantRepo creates a new tenant registry repository.
func NewTenantRepo(txm *postgres.TxManager) *TenantRepo {
	return &TenantRepo{txm: txm}
}

func (r *TenantRepo) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

const tenantColumns = `id, name, slug, status, created_at, updated_at`

func scanTenant(row pgx.Row) (*tenants.Tenant, error) {
	var t tenants.Tenant
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create registers a new tenant.
func (r *TenantRepo) Create(ctx context.Context, t *tenants.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, slug, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.querier(ctx).Exec(ctx, query,
		t.ID, t.Name, t.Slug, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("tenant", "slug", t.Slug)
		}
		return fmt.Errorf("insert tenant: %w", err)
	}

	return nil
}

// GetByID retrieves a tenant by ID.
func (r *TenantRepo) GetByID(ctx context.Context, tenantID id.ID) (*tenants.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`

	t, err := scanTenant(r.querier(ctx).QueryRow(ctx, query, tenantID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("tenant", tenantID.String())
	}
	if err != nil {
		return nil, fmt.Errorf("query tenant: %w", err)
	}

	return t, nil
}

// GetBySlug retrieves a tenant by slug.
func (r *TenantRepo) GetBySlug(ctx context.Context, slug string) (*tenants.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE slug = $1`

	t, err := scanTenant(r.querier(ctx).QueryRow(ctx, query, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("tenant", slug)
	}
	if err != nil {
		return nil, fmt.Errorf("query tenant: %w", err)
	}

	return t, nil
}

// List retrieves all tenants ordered by name.
func (r *TenantRepo) List(ctx context.Context) ([]*tenants.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY name`

	rows, err := r.querier(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query tenants: %w", err)
	}
	defer rows.Close()

	var result []*tenants.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		result = append(result, t)
	}

	return result, rows.Err()
}

// SetStatus changes the tenant lifecycle state.
func (r *TenantRepo) SetStatus(ctx context.Context, tenantID id.ID, status tenants.Status) error {
	query := `UPDATE tenants SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.querier(ctx).Exec(ctx, query, tenantID, status)
	if err != nil {
		return fmt.Errorf("update tenant status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("tenant", tenantID.String())
	}

	return nil
}

// Ensure interface compliance
var _ tenants.Repository = (*TenantRepo)(nil)
