package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
)

func TestCustomer_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		c := NewCustomer(id.New(), "Acme SARL")
		require.NoError(t, c.Validate(ctx))
	})

	t.Run("name required", func(t *testing.T) {
		c := NewCustomer(id.New(), "   ")
		err := c.Validate(ctx)
		require.Error(t, err)
		require.True(t, apperror.IsValidation(err))
	})

	t.Run("invalid email", func(t *testing.T) {
		c := NewCustomer(id.New(), "Acme SARL")
		bad := "not-an-email"
		c.Email = &bad
		err := c.Validate(ctx)
		require.Error(t, err)
		require.True(t, apperror.IsValidation(err))
	})

	t.Run("empty email allowed", func(t *testing.T) {
		c := NewCustomer(id.New(), "Acme SARL")
		empty := ""
		c.Email = &empty
		require.NoError(t, c.Validate(ctx))
	})
}

func TestNewCustomer_Defaults(t *testing.T) {
	tenantID := id.New()
	c := NewCustomer(tenantID, "Acme SARL")

	require.Equal(t, tenantID, c.TenantID)
	require.False(t, id.IsNil(c.ID))
	require.True(t, c.IsActive)
}
