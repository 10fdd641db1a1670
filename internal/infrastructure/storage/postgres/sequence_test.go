package postgres

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
)

// Mock objects

type seqMockRow struct {
	val int64
	err error
}

func (m *seqMockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// seqMockQuerier simulates the sequences table for one tenant/name key space.
type seqMockQuerier struct {
	mu       sync.Mutex
	counters map[string]int64

	// forcedErr, when set, is returned by every statement.
	forcedErr error
}

func newSeqMockQuerier() *seqMockQuerier {
	return &seqMockQuerier{counters: make(map[string]int64)}
}

func (m *seqMockQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *seqMockQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}

func (m *seqMockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.forcedErr != nil {
		return &seqMockRow{err: m.forcedErr}
	}

	key := ""
	if len(args) >= 2 {
		key = args[0].(id.ID).String() + "/" + args[1].(string)
	}

	switch {
	case strings.HasPrefix(sql, "SELECT"):
		val, ok := m.counters[key]
		if !ok {
			return &seqMockRow{err: pgx.ErrNoRows}
		}
		return &seqMockRow{val: val}

	case strings.HasPrefix(sql, "UPDATE"):
		m.counters[key]++
		return &seqMockRow{val: m.counters[key]}

	case strings.HasPrefix(sql, "INSERT"):
		if _, ok := m.counters[key]; ok {
			m.counters[key]++
		} else {
			m.counters[key] = 1
		}
		return &seqMockRow{val: m.counters[key]}
	}

	return &seqMockRow{err: pgx.ErrNoRows}
}

func newTestSequenceStore(q Querier) *SequenceStore {
	return &SequenceStore{querier: func(context.Context) Querier { return q }}
}

func TestSequenceStore_NextValue_StartsAtOne(t *testing.T) {
	q := newSeqMockQuerier()
	store := newTestSequenceStore(q)
	ctx := context.Background()
	tenantID := id.New()

	val, err := store.NextValue(ctx, tenantID, "invoice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != 1 {
		t.Errorf("expected first value 1, got %d", val)
	}

	val, err = store.NextValue(ctx, tenantID, "invoice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != 2 {
		t.Errorf("expected second value 2, got %d", val)
	}
}

func TestSequenceStore_NextValue_TenantsAreIndependent(t *testing.T) {
	q := newSeqMockQuerier()
	store := newTestSequenceStore(q)
	ctx := context.Background()

	tenantA := id.New()
	tenantB := id.New()

	for i := 0; i < 3; i++ {
		if _, err := store.NextValue(ctx, tenantA, "invoice"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	val, err := store.NextValue(ctx, tenantB, "invoice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != 1 {
		t.Errorf("expected tenant B to start at 1, got %d", val)
	}
}

func TestSequenceStore_NextValue_NamesAreIndependent(t *testing.T) {
	q := newSeqMockQuerier()
	store := newTestSequenceStore(q)
	ctx := context.Background()
	tenantID := id.New()

	if _, err := store.NextValue(ctx, tenantID, "invoice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	val, err := store.NextValue(ctx, tenantID, "credit_note")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != 1 {
		t.Errorf("expected independent counter to start at 1, got %d", val)
	}
}

func TestSequenceStore_NextValue_LockTimeoutMapsToConflict(t *testing.T) {
	q := newSeqMockQuerier()
	q.forcedErr = &pgconn.PgError{Code: pgLockNotAvailable}
	store := newTestSequenceStore(q)

	_, err := store.NextValue(context.Background(), id.New(), "invoice")
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperror.IsConflict(err) {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestSequenceStore_NextValue_StorageErrorMapsToDatabase(t *testing.T) {
	q := newSeqMockQuerier()
	q.forcedErr = &pgconn.PgError{Code: "57014"} // statement cancelled
	store := newTestSequenceStore(q)

	_, err := store.NextValue(context.Background(), id.New(), "invoice")
	if err == nil {
		t.Fatal("expected error")
	}
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperror.CodeDatabase {
		t.Errorf("expected %s, got %s", apperror.CodeDatabase, appErr.Code)
	}
}
