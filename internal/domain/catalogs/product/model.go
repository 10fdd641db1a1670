// Package product provides the Product catalog.
// Products are the sellable goods and services referenced by invoice lines.
package product

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"factura/internal/core/apperror"
	"factura/internal/core/entity"
	"factura/internal/core/id"
	"factura/internal/core/types"
)

// DefaultVATRate is applied when a product does not specify its own rate.
var DefaultVATRate = decimal.NewFromFloat(19.0)

// Product represents a sellable good or service.
type Product struct {
	entity.BaseEntity

	// SKU is the stock keeping unit (unique within tenant)
	SKU string `db:"sku" json:"sku"`

	// Barcode is the EAN/UPC code
	Barcode *string `db:"barcode" json:"barcode,omitempty"`

	// Name is the display name (required)
	Name string `db:"name" json:"name"`

	// Description is a free-form text
	Description *string `db:"description" json:"description,omitempty"`

	// BasePrice is the purchase/cost price
	BasePrice types.Money `db:"base_price" json:"basePrice"`

	// SalePrice is the default selling price
	SalePrice types.Money `db:"sale_price" json:"salePrice"`

	// VATRate is the applicable VAT percentage
	VATRate types.Money `db:"vat_rate" json:"vatRate"`

	// StockQuantity is the on-hand quantity
	StockQuantity int `db:"stock_quantity" json:"stockQuantity"`

	// MinStockLevel triggers replenishment below this quantity
	MinStockLevel int `db:"min_stock_level" json:"minStockLevel"`

	// Category is a free-form grouping label
	Category *string `db:"category" json:"category,omitempty"`

	// IsActive marks whether the product can be sold
	IsActive bool `db:"is_active" json:"isActive"`
}

// NewProduct creates a new active Product with the default VAT rate.
func NewProduct(tenantID id.ID, sku, name string) *Product {
	return &Product{
		BaseEntity: entity.NewBaseEntity(tenantID),
		SKU:        sku,
		Name:       name,
		VATRate:    DefaultVATRate,
		IsActive:   true,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if strings.TrimSpace(p.SKU) == "" {
		return apperror.NewValidation("sku is required").
			WithDetail("field", "sku")
	}

	if p.BasePrice.IsNegative() {
		return apperror.NewValidation("base price must not be negative").
			WithDetail("field", "basePrice")
	}

	if p.SalePrice.IsNegative() {
		return apperror.NewValidation("sale price must not be negative").
			WithDetail("field", "salePrice")
	}

	if p.VATRate.IsNegative() {
		return apperror.NewValidation("VAT rate must not be negative").
			WithDetail("field", "vatRate")
	}

	return nil
}
