package tenants

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"factura/internal/core/apperror"
)

func TestTenant_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, New("Acme SARL", "acme").Validate(ctx))
		require.NoError(t, New("Acme SARL", "acme-west-2").Validate(ctx))
	})

	t.Run("name required", func(t *testing.T) {
		err := New("  ", "acme").Validate(ctx)
		require.Error(t, err)
		require.True(t, apperror.IsValidation(err))
	})

	t.Run("bad slugs", func(t *testing.T) {
		for _, slug := range []string{"", "Acme", "acme_west", "-acme", "acme-", "ac me"} {
			err := New("Acme", slug).Validate(ctx)
			require.Error(t, err, "slug %q", slug)
			require.True(t, apperror.IsValidation(err))
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		tn := New("Acme", "acme")
		tn.Status = Status("deleted")
		err := tn.Validate(ctx)
		require.Error(t, err)
		require.True(t, apperror.IsValidation(err))
	})
}

func TestTenant_IsActive(t *testing.T) {
	tn := New("Acme", "acme")
	require.True(t, tn.IsActive())

	tn.Status = StatusSuspended
	require.False(t, tn.IsActive())
}
