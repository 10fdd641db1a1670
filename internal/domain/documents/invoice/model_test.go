package invoice

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/core/types"
)

func money(s string) types.Money {
	return types.MustMoney(s)
}

func TestInvoice_Totals(t *testing.T) {
	inv := NewInvoice(id.New(), id.New())

	rate := money("19")
	inv.AddItem(nil, "consulting", 2, money("10.00"), &rate)
	inv.AddItem(nil, "hardware", 1, money("20.00"), &rate)

	require.True(t, inv.Subtotal.Equal(money("40.00")), "subtotal = %s", inv.Subtotal)
	require.True(t, inv.VATAmount.Equal(money("7.60")), "vat = %s", inv.VATAmount)
	require.True(t, inv.TotalAmount.Equal(money("47.60")), "total = %s", inv.TotalAmount)
}

func TestInvoice_Totals_MixedRates(t *testing.T) {
	inv := NewInvoice(id.New(), id.New())

	full := money("19")
	reduced := money("9")
	inv.AddItem(nil, "service", 1, money("100.00"), &full)
	inv.AddItem(nil, "book", 2, money("50.00"), &reduced)

	// 100*0.19 + 100*0.09 = 28.00
	require.True(t, inv.Subtotal.Equal(money("200.00")), "subtotal = %s", inv.Subtotal)
	require.True(t, inv.VATAmount.Equal(money("28.00")), "vat = %s", inv.VATAmount)
	require.True(t, inv.TotalAmount.Equal(money("228.00")), "total = %s", inv.TotalAmount)
}

func TestInvoice_AddItem_DefaultVATRate(t *testing.T) {
	inv := NewInvoice(id.New(), id.New())

	inv.AddItem(nil, "default rate line", 1, money("10.00"), nil)

	require.Len(t, inv.Items, 1)
	require.True(t, inv.Items[0].VATRate.Equal(decimal.NewFromFloat(19.0)))
	require.True(t, inv.VATAmount.Equal(money("1.90")), "vat = %s", inv.VATAmount)
}

func TestInvoice_Totals_FractionalRounding(t *testing.T) {
	inv := NewInvoice(id.New(), id.New())

	rate := money("19")
	inv.AddItem(nil, "odd price", 3, money("3.33"), &rate)

	// 9.99 net, 1.8981 VAT -> 1.90, total 11.89
	require.True(t, inv.Subtotal.Equal(money("9.99")), "subtotal = %s", inv.Subtotal)
	require.True(t, inv.VATAmount.Equal(money("1.90")), "vat = %s", inv.VATAmount)
	require.True(t, inv.TotalAmount.Equal(money("11.89")), "total = %s", inv.TotalAmount)
}

func TestInvoice_Validate(t *testing.T) {
	ctx := context.Background()
	rate := money("19")

	t.Run("valid", func(t *testing.T) {
		inv := NewInvoice(id.New(), id.New())
		inv.AddItem(nil, "line", 1, money("10.00"), &rate)
		require.NoError(t, inv.Validate(ctx))
	})

	t.Run("missing customer", func(t *testing.T) {
		inv := NewInvoice(id.New(), id.Nil())
		inv.AddItem(nil, "line", 1, money("10.00"), &rate)
		err := inv.Validate(ctx)
		require.Error(t, err)
		require.True(t, apperror.IsValidation(err))
	})

	t.Run("no items", func(t *testing.T) {
		inv := NewInvoice(id.New(), id.New())
		err := inv.Validate(ctx)
		require.Error(t, err)
		require.True(t, apperror.IsValidation(err))
	})

	t.Run("zero quantity", func(t *testing.T) {
		inv := NewInvoice(id.New(), id.New())
		inv.AddItem(nil, "line", 1, money("10.00"), &rate)
		inv.Items[0].Quantity = 0
		err := inv.Validate(ctx)
		require.Error(t, err)
		require.True(t, apperror.IsValidation(err))
	})

	t.Run("negative price", func(t *testing.T) {
		inv := NewInvoice(id.New(), id.New())
		inv.AddItem(nil, "line", 1, money("10.00"), &rate)
		inv.Items[0].UnitPrice = money("-1.00")
		err := inv.Validate(ctx)
		require.Error(t, err)
		require.True(t, apperror.IsValidation(err))
	})

	t.Run("negative vat rate", func(t *testing.T) {
		inv := NewInvoice(id.New(), id.New())
		inv.AddItem(nil, "line", 1, money("10.00"), &rate)
		inv.Items[0].VATRate = money("-19")
		err := inv.Validate(ctx)
		require.Error(t, err)
		require.True(t, apperror.IsValidation(err))
	})

	t.Run("unknown status", func(t *testing.T) {
		inv := NewInvoice(id.New(), id.New())
		inv.AddItem(nil, "line", 1, money("10.00"), &rate)
		inv.Status = Status("archived")
		err := inv.Validate(ctx)
		require.Error(t, err)
		require.True(t, apperror.IsValidation(err))
	})
}

func TestInvoice_ItemLineNumbers(t *testing.T) {
	inv := NewInvoice(id.New(), id.New())
	inv.AddItem(nil, "first", 1, money("1.00"), nil)
	inv.AddItem(nil, "second", 1, money("2.00"), nil)
	inv.AddItem(nil, "third", 1, money("3.00"), nil)

	for i, item := range inv.Items {
		require.Equal(t, i+1, item.LineNo)
	}
}
