package invoice

import (
	"testing"

	"github.com/stretchr/testify/require"

	"factura/internal/core/apperror"
)

func TestTransitionPolicy_Permissive(t *testing.T) {
	p := MustTransitionPolicy(PermissiveTransitionExpr)

	require.NoError(t, p.Check(StatusDraft, StatusPaid))
	require.NoError(t, p.Check(StatusPaid, StatusDraft))
	require.NoError(t, p.Check(StatusCancelled, StatusSent))
}

func TestTransitionPolicy_Strict(t *testing.T) {
	p := MustTransitionPolicy(StrictTransitionExpr)

	allowed := []struct{ from, to Status }{
		{StatusDraft, StatusSent},
		{StatusDraft, StatusCancelled},
		{StatusSent, StatusPaid},
		{StatusSent, StatusCancelled},
		{StatusSent, StatusOverdue},
		{StatusOverdue, StatusPaid},
		{StatusOverdue, StatusCancelled},
	}
	for _, tc := range allowed {
		require.NoError(t, p.Check(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to Status }{
		{StatusDraft, StatusPaid},
		{StatusDraft, StatusOverdue},
		{StatusPaid, StatusDraft},
		{StatusPaid, StatusSent},
		{StatusCancelled, StatusSent},
		{StatusSent, StatusDraft},
	}
	for _, tc := range denied {
		err := p.Check(tc.from, tc.to)
		require.Error(t, err, "%s -> %s should be denied", tc.from, tc.to)
		require.True(t, apperror.IsValidation(err))
	}
}

func TestTransitionPolicy_SameStatusAlwaysPasses(t *testing.T) {
	p := MustTransitionPolicy(StrictTransitionExpr)
	require.NoError(t, p.Check(StatusPaid, StatusPaid))
}

func TestNewTransitionPolicy_RejectsBadExpressions(t *testing.T) {
	_, err := NewTransitionPolicy("from ==")
	require.Error(t, err)

	_, err = NewTransitionPolicy("'not a bool'")
	require.Error(t, err)
}
