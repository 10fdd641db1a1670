// Package customer provides the Customer catalog.
// Customers are the billing counterparties invoices are issued to.
package customer

import (
	"context"
	"regexp"
	"strings"

	"factura/internal/core/apperror"
	"factura/internal/core/entity"
	"factura/internal/core/id"
)

// Pre-compiled regex patterns for validation (performance optimization)
var (
	emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Customer represents a billing counterparty.
type Customer struct {
	entity.BaseEntity

	// Name is the display name (required)
	Name string `db:"name" json:"name"`

	// Email is the primary contact email (unique within tenant when set)
	Email *string `db:"email" json:"email,omitempty"`

	// Phone is the primary contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Address is the street address
	Address *string `db:"address" json:"address,omitempty"`

	// City is the customer's city
	City *string `db:"city" json:"city,omitempty"`

	// NIF is the fiscal identification number
	NIF *string `db:"nif" json:"nif,omitempty"`

	// RC is the trade register number
	RC *string `db:"rc" json:"rc,omitempty"`

	// AI is the tax article number
	AI *string `db:"ai" json:"ai,omitempty"`

	// IsActive marks whether the customer can be invoiced
	IsActive bool `db:"is_active" json:"isActive"`
}

// NewCustomer creates a new active Customer with required fields.
func NewCustomer(tenantID id.ID, name string) *Customer {
	return &Customer{
		BaseEntity: entity.NewBaseEntity(tenantID),
		Name:       name,
		IsActive:   true,
	}
}

// Validate implements entity.Validatable interface.
func (c *Customer) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	// Email validation (if provided)
	if c.Email != nil && *c.Email != "" && !isValidEmail(*c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}

func isValidEmail(email string) bool {
	return emailRE.MatchString(email)
}
