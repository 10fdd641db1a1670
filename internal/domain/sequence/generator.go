// Package sequence defines the gap-free per-tenant sequence contract.
//
// Each (tenant, name) pair owns an independent counter. NextValue must be
// called inside an open transaction: the implementation takes a row lock on
// the counter, so the value is only consumed when the surrounding
// transaction commits. A rollback releases the lock and discards the
// increment, which keeps the series gap-free.
package sequence

import (
	"context"

	"factura/internal/core/id"
)

// InvoiceSequence is the counter name used for invoice numbering.
const InvoiceSequence = "invoice"

// Generator issues the next value of a named per-tenant counter.
type Generator interface {
	// NextValue returns last_value + 1 for the (tenantID, name) counter,
	// creating the counter at 1 on first use. The row stays locked until
	// the caller's transaction ends. A lock wait timeout is reported as
	// a Conflict error.
	NextValue(ctx context.Context, tenantID id.ID, name string) (int64, error)
}
