package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
)

func TestNewProduct_Defaults(t *testing.T) {
	tenantID := id.New()
	p := NewProduct(tenantID, "SKU-1", "Widget")

	require.Equal(t, tenantID, p.TenantID)
	require.True(t, p.IsActive)
	require.True(t, p.VATRate.Equal(decimal.NewFromFloat(19.0)), "vat rate = %s", p.VATRate)
}

func TestProduct_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		p := NewProduct(id.New(), "SKU-1", "Widget")
		require.NoError(t, p.Validate(ctx))
	})

	t.Run("name required", func(t *testing.T) {
		p := NewProduct(id.New(), "SKU-1", "  ")
		err := p.Validate(ctx)
		require.Error(t, err)
		require.True(t, apperror.IsValidation(err))
	})

	t.Run("sku required", func(t *testing.T) {
		p := NewProduct(id.New(), "", "Widget")
		err := p.Validate(ctx)
		require.Error(t, err)
		require.True(t, apperror.IsValidation(err))
	})

	t.Run("negative sale price", func(t *testing.T) {
		p := NewProduct(id.New(), "SKU-1", "Widget")
		p.SalePrice = decimal.NewFromFloat(-5)
		err := p.Validate(ctx)
		require.Error(t, err)
		require.True(t, apperror.IsValidation(err))
	})

	t.Run("negative vat rate", func(t *testing.T) {
		p := NewProduct(id.New(), "SKU-1", "Widget")
		p.VATRate = decimal.NewFromFloat(-19)
		err := p.Validate(ctx)
		require.Error(t, err)
		require.True(t, apperror.IsValidation(err))
	})
}
