package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"factura/internal/core/id"
	"factura/internal/domain/catalogs/product"
)

// ProductResponse contains product fields.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Barcode       *string         `json:"barcode,omitempty"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	VATRate       decimal.Decimal `json:"vatRate"`
	StockQuantity int             `json:"stockQuantity"`
	MinStockLevel int             `json:"minStockLevel"`
	Category      *string         `json:"category,omitempty"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// FromProduct creates ProductResponse from the domain entity.
func FromProduct(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID.String(),
		SKU:           p.SKU,
		Barcode:       p.Barcode,
		Name:          p.Name,
		Description:   p.Description,
		BasePrice:     p.BasePrice,
		SalePrice:     p.SalePrice,
		VATRate:       p.VATRate,
		StockQuantity: p.StockQuantity,
		MinStockLevel: p.MinStockLevel,
		Category:      p.Category,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// CreateProductRequest for creating products.
type CreateProductRequest struct {
	SKU           string           `json:"sku" binding:"required"`
	Barcode       *string          `json:"barcode"`
	Name          string           `json:"name" binding:"required"`
	Description   *string          `json:"description"`
	BasePrice     decimal.Decimal  `json:"basePrice"`
	SalePrice     decimal.Decimal  `json:"salePrice"`
	VATRate       *decimal.Decimal `json:"vatRate"`
	StockQuantity int              `json:"stockQuantity"`
	MinStockLevel int              `json:"minStockLevel"`
	Category      *string          `json:"category"`
}

// ToProduct maps the request to a new domain entity.
func (r CreateProductRequest) ToProduct(tenantID id.ID) *product.Product {
	p := product.NewProduct(tenantID, r.SKU, r.Name)
	p.Barcode = r.Barcode
	p.Description = r.Description
	p.BasePrice = r.BasePrice
	p.SalePrice = r.SalePrice
	if r.VATRate != nil {
		p.VATRate = *r.VATRate
	}
	p.StockQuantity = r.StockQuantity
	p.MinStockLevel = r.MinStockLevel
	p.Category = r.Category
	return p
}

// UpdateProductRequest for updating products. Nil fields are left unchanged.
type UpdateProductRequest struct {
	SKU           *string          `json:"sku"`
	Barcode       *string          `json:"barcode"`
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	BasePrice     *decimal.Decimal `json:"basePrice"`
	SalePrice     *decimal.Decimal `json:"salePrice"`
	VATRate       *decimal.Decimal `json:"vatRate"`
	StockQuantity *int             `json:"stockQuantity"`
	MinStockLevel *int             `json:"minStockLevel"`
	Category      *string          `json:"category"`
	IsActive      *bool            `json:"isActive"`
}

// Apply maps non-nil request fields onto the existing entity.
func (r UpdateProductRequest) Apply(p *product.Product) *product.Product {
	if r.SKU != nil {
		p.SKU = *r.SKU
	}
	if r.Barcode != nil {
		p.Barcode = r.Barcode
	}
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = r.Description
	}
	if r.BasePrice != nil {
		p.BasePrice = *r.BasePrice
	}
	if r.SalePrice != nil {
		p.SalePrice = *r.SalePrice
	}
	if r.VATRate != nil {
		p.VATRate = *r.VATRate
	}
	if r.StockQuantity != nil {
		p.StockQuantity = *r.StockQuantity
	}
	if r.MinStockLevel != nil {
		p.MinStockLevel = *r.MinStockLevel
	}
	if r.Category != nil {
		p.Category = r.Category
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	return p
}
