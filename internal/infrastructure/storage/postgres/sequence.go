package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/domain/sequence"
)

// Postgres error codes relevant to counter locking.
const (
	pgLockNotAvailable = "55P03"
	pgDeadlockDetected = "40P01"
	pgUniqueViolation  = "23505"
	pgForeignKeyViolation = "23503"
)

// Compile-time check.
var _ sequence.Generator = (*SequenceStore)(nil)

// SequenceStore issues gap-free per-tenant counters backed by the sequences
// table. Each (tenant_id, name) pair is one row; NextValue locks that row
// FOR UPDATE, so the increment is only visible once the surrounding
// transaction commits. A rollback releases the lock and the value is
// handed to the next caller.
//
// NextValue must run inside a transaction opened by TxManager. Outside a
// transaction the lock would be released immediately and gaps could appear.
type SequenceStore struct {
	querier func(ctx context.Context) Querier
}

// NewSequenceStore creates a store bound to the transaction manager.
func NewSequenceStore(txm *TxManager) *SequenceStore {
	return &SequenceStore{querier: txm.GetQuerier}
}

// NextValue returns the next value of the (tenantID, name) counter.
// First use creates the counter with last_value = 1 and returns 1.
func (s *SequenceStore) NextValue(ctx context.Context, tenantID id.ID, name string) (int64, error) {
	q := s.querier(ctx)

	var current int64
	err := q.QueryRow(ctx,
		`SELECT last_value FROM sequences WHERE tenant_id = $1 AND name = $2 FOR UPDATE`,
		tenantID, name,
	).Scan(&current)

	switch {
	case err == nil:
		var next int64
		err = q.QueryRow(ctx,
			`UPDATE sequences
			 SET last_value = last_value + 1, updated_at = NOW()
			 WHERE tenant_id = $1 AND name = $2
			 RETURNING last_value`,
			tenantID, name,
		).Scan(&next)
		if err != nil {
			return 0, s.mapError(err, tenantID, name)
		}
		return next, nil

	case errors.Is(err, pgx.ErrNoRows):
		// Lazy creation. A concurrent first use can race the INSERT, the
		// ON CONFLICT arm falls back to a plain increment in that case.
		var next int64
		err = q.QueryRow(ctx,
			`INSERT INTO sequences (tenant_id, name, last_value, updated_at)
			 VALUES ($1, $2, 1, NOW())
			 ON CONFLICT (tenant_id, name)
			 DO UPDATE SET last_value = sequences.last_value + 1, updated_at = NOW()
			 RETURNING last_value`,
			tenantID, name,
		).Scan(&next)
		if err != nil {
			return 0, s.mapError(err, tenantID, name)
		}
		return next, nil

	default:
		return 0, s.mapError(err, tenantID, name)
	}
}

// mapError translates pgx failures into the platform error taxonomy.
// Lock waits and deadlocks are contention, everything else is storage.
func (s *SequenceStore) mapError(err error, tenantID id.ID, name string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgLockNotAvailable, pgDeadlockDetected:
			return apperror.NewConflict("sequence is locked by another operation").
				WithDetail("sequence", name).
				WithCause(err)
		}
	}
	return apperror.NewDatabase(fmt.Errorf("sequence %s/%s: %w", tenantID, name, err))
}
