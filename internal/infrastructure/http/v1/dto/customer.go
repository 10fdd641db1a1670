package dto

import (
	"time"

	"factura/internal/core/id"
	"factura/internal/domain/catalogs/customer"
)

// CustomerResponse contains customer fields.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	City      *string   `json:"city,omitempty"`
	NIF       *string   `json:"nif,omitempty"`
	RC        *string   `json:"rc,omitempty"`
	AI        *string   `json:"ai,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromCustomer creates CustomerResponse from the domain entity.
func FromCustomer(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		City:      c.City,
		NIF:       c.NIF,
		RC:        c.RC,
		AI:        c.AI,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CreateCustomerRequest for creating customers.
type CreateCustomerRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	NIF     *string `json:"nif"`
	RC      *string `json:"rc"`
	AI      *string `json:"ai"`
}

// ToCustomer maps the request to a new domain entity.
func (r CreateCustomerRequest) ToCustomer(tenantID id.ID) *customer.Customer {
	c := customer.NewCustomer(tenantID, r.Name)
	c.Email = r.Email
	c.Phone = r.Phone
	c.Address = r.Address
	c.City = r.City
	c.NIF = r.NIF
	c.RC = r.RC
	c.AI = r.AI
	return c
}

// UpdateCustomerRequest for updating customers. Nil fields are left unchanged.
type UpdateCustomerRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	NIF      *string `json:"nif"`
	RC       *string `json:"rc"`
	AI       *string `json:"ai"`
	IsActive *bool   `json:"isActive"`
}

// Apply maps non-nil request fields onto the existing entity.
func (r UpdateCustomerRequest) Apply(c *customer.Customer) *customer.Customer {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Email != nil {
		c.Email = r.Email
	}
	if r.Phone != nil {
		c.Phone = r.Phone
	}
	if r.Address != nil {
		c.Address = r.Address
	}
	if r.City != nil {
		c.City = r.City
	}
	if r.NIF != nil {
		c.NIF = r.NIF
	}
	if r.RC != nil {
		c.RC = r.RC
	}
	if r.AI != nil {
		c.AI = r.AI
	}
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
	return c
}
