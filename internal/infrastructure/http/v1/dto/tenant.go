package dto

import (
	"time"

	"factura/internal/domain/tenants"
)

// TenantResponse contains tenant registry fields.
type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromTenant creates TenantResponse from the domain entity.
func FromTenant(t *tenants.Tenant) TenantResponse {
	return TenantResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		Slug:      t.Slug,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// CreateTenantRequest for registering tenants.
type CreateTenantRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// ToTenant maps the request to a new domain entity.
func (r CreateTenantRequest) ToTenant() *tenants.Tenant {
	return tenants.New(r.Name, r.Slug)
}
