// Package tenants provides the tenant registry.
// Unlike the catalogs, tenants are global rows: they are the scope every
// other entity is partitioned by.
package tenants

import (
	"context"
	"regexp"
	"strings"
	"time"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
)

var slugRE = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Status describes the lifecycle state of a tenant.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// Tenant represents one organization using the platform.
type Tenant struct {
	ID        id.ID     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// New creates an active tenant.
func New(name, slug string) *Tenant {
	now := time.Now().UTC()
	return &Tenant{
		ID:        id.New(),
		Name:      name,
		Slug:      slug,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsActive reports whether the tenant may use the API.
func (t *Tenant) IsActive() bool {
	return t.Status == StatusActive
}

// Validate checks tenant invariants.
func (t *Tenant) Validate(ctx context.Context) error {
	if strings.TrimSpace(t.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if !slugRE.MatchString(t.Slug) {
		return apperror.NewValidation("slug must be lowercase letters, digits and dashes").
			WithDetail("field", "slug")
	}
	switch t.Status {
	case StatusActive, StatusSuspended:
	default:
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(t.Status))
	}
	return nil
}
