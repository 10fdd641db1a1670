package invoice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/domain"
)

// --- Fakes ---
//
// The fake transaction manager stages writes and only applies them on
// commit, mirroring how the real sequence counter and repository behave
// under rollback.

type txParticipant interface {
	commit()
	rollback()
}

type fakeTxManager struct {
	participants []txParticipant
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		for _, p := range m.participants {
			p.rollback()
		}
		return err
	}
	for _, p := range m.participants {
		p.commit()
	}
	return nil
}

type fakeSeq struct {
	committed int64
	pending   int64
}

func (s *fakeSeq) NextValue(_ context.Context, _ id.ID, _ string) (int64, error) {
	s.pending++
	return s.committed + s.pending, nil
}

func (s *fakeSeq) commit()   { s.committed += s.pending; s.pending = 0 }
func (s *fakeSeq) rollback() { s.pending = 0 }

type fakeRepo struct {
	invoices map[id.ID]*Invoice
	items    map[id.ID][]Item
	staged   []func()

	failSaveItems bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		invoices: make(map[id.ID]*Invoice),
		items:    make(map[id.ID][]Item),
	}
}

func (r *fakeRepo) commit() {
	for _, apply := range r.staged {
		apply()
	}
	r.staged = nil
}

func (r *fakeRepo) rollback() { r.staged = nil }

func (r *fakeRepo) Create(_ context.Context, tenantID id.ID, inv *Invoice) error {
	cp := *inv
	cp.TenantID = tenantID
	r.staged = append(r.staged, func() { r.invoices[cp.ID] = &cp })
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, tenantID, invoiceID id.ID) (*Invoice, error) {
	inv, ok := r.invoices[invoiceID]
	if !ok || inv.TenantID != tenantID {
		return nil, apperror.NewNotFound("invoices", invoiceID.String())
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeRepo) GetByNumber(_ context.Context, tenantID id.ID, number string) (*Invoice, error) {
	for _, inv := range r.invoices {
		if inv.TenantID == tenantID && inv.InvoiceNumber == number {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("invoices", number)
}

func (r *fakeRepo) Update(_ context.Context, tenantID id.ID, inv *Invoice) error {
	existing, ok := r.invoices[inv.ID]
	if !ok || existing.TenantID != tenantID {
		return apperror.NewNotFound("invoices", inv.ID.String())
	}
	cp := *inv
	r.staged = append(r.staged, func() { r.invoices[cp.ID] = &cp })
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, tenantID, invoiceID id.ID) error {
	existing, ok := r.invoices[invoiceID]
	if !ok || existing.TenantID != tenantID {
		return apperror.NewNotFound("invoices", invoiceID.String())
	}
	r.staged = append(r.staged, func() {
		delete(r.invoices, invoiceID)
		delete(r.items, invoiceID)
	})
	return nil
}

func (r *fakeRepo) List(_ context.Context, tenantID id.ID, f domain.ListFilter) (domain.ListResult[*Invoice], error) {
	result := domain.ListResult[*Invoice]{Limit: f.Limit, Offset: f.Offset}
	for _, inv := range r.invoices {
		if inv.TenantID == tenantID {
			cp := *inv
			result.Items = append(result.Items, &cp)
			result.TotalCount++
		}
	}
	return result, nil
}

func (r *fakeRepo) GetItems(_ context.Context, invoiceID id.ID) ([]Item, error) {
	return r.items[invoiceID], nil
}

func (r *fakeRepo) SaveItems(_ context.Context, invoiceID id.ID, items []Item) error {
	if r.failSaveItems {
		return apperror.NewDatabase(context.DeadlineExceeded)
	}
	cp := make([]Item, len(items))
	copy(cp, items)
	r.staged = append(r.staged, func() { r.items[invoiceID] = cp })
	return nil
}

type fakeCustomers struct {
	existing map[id.ID]id.ID // customer id -> tenant id
}

func (c *fakeCustomers) Exists(_ context.Context, tenantID, customerID id.ID) (bool, error) {
	owner, ok := c.existing[customerID]
	return ok && owner == tenantID, nil
}

func newTestService(repo *fakeRepo, customers *fakeCustomers, seq *fakeSeq, policy *TransitionPolicy) *Service {
	txm := &fakeTxManager{participants: []txParticipant{repo, seq}}
	return NewService(repo, customers, seq, txm, policy)
}

func validInvoice(tenantID, customerID id.ID) *Invoice {
	inv := NewInvoice(tenantID, customerID)
	rate := money("19")
	inv.AddItem(nil, "consulting", 2, money("10.00"), &rate)
	inv.AddItem(nil, "hardware", 1, money("20.00"), &rate)
	return inv
}

// --- Tests ---

func TestService_Create_AssignsSequentialNumbers(t *testing.T) {
	ctx := context.Background()
	tenantID := id.New()
	customerID := id.New()

	repo := newFakeRepo()
	customers := &fakeCustomers{existing: map[id.ID]id.ID{customerID: tenantID}}
	svc := newTestService(repo, customers, &fakeSeq{}, nil)

	first := validInvoice(tenantID, customerID)
	require.NoError(t, svc.Create(ctx, tenantID, first))
	require.Equal(t, "INV-1", first.InvoiceNumber)

	second := validInvoice(tenantID, customerID)
	require.NoError(t, svc.Create(ctx, tenantID, second))
	require.Equal(t, "INV-2", second.InvoiceNumber)

	// Persisted atomically: header and items both visible after commit.
	stored, err := svc.GetByID(ctx, tenantID, first.ID)
	require.NoError(t, err)
	require.Equal(t, "INV-1", stored.InvoiceNumber)
	require.Len(t, stored.Items, 2)
	require.True(t, stored.TotalAmount.Equal(money("47.60")))
}

func TestService_Create_RollbackReturnsNumber(t *testing.T) {
	ctx := context.Background()
	tenantID := id.New()
	customerID := id.New()

	repo := newFakeRepo()
	customers := &fakeCustomers{existing: map[id.ID]id.ID{customerID: tenantID}}
	seq := &fakeSeq{}
	svc := newTestService(repo, customers, seq, nil)

	repo.failSaveItems = true
	failed := validInvoice(tenantID, customerID)
	require.Error(t, svc.Create(ctx, tenantID, failed))

	// Nothing persisted, counter untouched.
	require.Empty(t, repo.invoices)
	require.Equal(t, int64(0), seq.committed)

	repo.failSaveItems = false
	inv := validInvoice(tenantID, customerID)
	require.NoError(t, svc.Create(ctx, tenantID, inv))
	require.Equal(t, "INV-1", inv.InvoiceNumber)
}

func TestService_Create_UnknownCustomer(t *testing.T) {
	ctx := context.Background()
	tenantID := id.New()

	repo := newFakeRepo()
	customers := &fakeCustomers{existing: map[id.ID]id.ID{}}
	seq := &fakeSeq{}
	svc := newTestService(repo, customers, seq, nil)

	inv := validInvoice(tenantID, id.New())
	err := svc.Create(ctx, tenantID, inv)
	require.Error(t, err)
	require.True(t, apperror.IsNotFound(err))
	require.Empty(t, repo.invoices)
	require.Equal(t, int64(0), seq.committed)
}

func TestService_Create_CustomerOfOtherTenant(t *testing.T) {
	ctx := context.Background()
	tenantID := id.New()
	otherTenant := id.New()
	customerID := id.New()

	repo := newFakeRepo()
	customers := &fakeCustomers{existing: map[id.ID]id.ID{customerID: otherTenant}}
	svc := newTestService(repo, customers, &fakeSeq{}, nil)

	inv := validInvoice(tenantID, customerID)
	err := svc.Create(ctx, tenantID, inv)
	require.Error(t, err)
	require.True(t, apperror.IsNotFound(err))
}

func TestService_Create_InvalidInvoice(t *testing.T) {
	ctx := context.Background()
	tenantID := id.New()
	customerID := id.New()

	repo := newFakeRepo()
	customers := &fakeCustomers{existing: map[id.ID]id.ID{customerID: tenantID}}
	seq := &fakeSeq{}
	svc := newTestService(repo, customers, seq, nil)

	inv := NewInvoice(tenantID, customerID) // no items
	err := svc.Create(ctx, tenantID, inv)
	require.Error(t, err)
	require.True(t, apperror.IsValidation(err))
	require.Equal(t, int64(0), seq.committed)
}

func TestService_Update_MutableFieldsOnly(t *testing.T) {
	ctx := context.Background()
	tenantID := id.New()
	customerID := id.New()

	repo := newFakeRepo()
	customers := &fakeCustomers{existing: map[id.ID]id.ID{customerID: tenantID}}
	svc := newTestService(repo, customers, &fakeSeq{}, MustTransitionPolicy(StrictTransitionExpr))

	inv := validInvoice(tenantID, customerID)
	require.NoError(t, svc.Create(ctx, tenantID, inv))

	due := time.Now().UTC().AddDate(0, 1, 0)
	notes := "net 30"
	sent := StatusSent
	updated, err := svc.Update(ctx, tenantID, inv.ID, UpdateInput{
		Status:  &sent,
		DueDate: &due,
		Notes:   &notes,
	})
	require.NoError(t, err)
	require.Equal(t, StatusSent, updated.Status)
	require.Equal(t, &notes, updated.Notes)

	// Number and totals survive updates untouched.
	require.Equal(t, "INV-1", updated.InvoiceNumber)
	require.True(t, updated.TotalAmount.Equal(money("47.60")))
}

func TestService_Update_ForbiddenTransition(t *testing.T) {
	ctx := context.Background()
	tenantID := id.New()
	customerID := id.New()

	repo := newFakeRepo()
	customers := &fakeCustomers{existing: map[id.ID]id.ID{customerID: tenantID}}
	svc := newTestService(repo, customers, &fakeSeq{}, MustTransitionPolicy(StrictTransitionExpr))

	inv := validInvoice(tenantID, customerID)
	require.NoError(t, svc.Create(ctx, tenantID, inv))

	paid := StatusPaid
	_, err := svc.Update(ctx, tenantID, inv.ID, UpdateInput{Status: &paid})
	require.Error(t, err)
	require.True(t, apperror.IsValidation(err))

	stored, err := svc.GetByID(ctx, tenantID, inv.ID)
	require.NoError(t, err)
	require.Equal(t, StatusDraft, stored.Status)
}

func TestService_Update_PaidStampsPaidAt(t *testing.T) {
	ctx := context.Background()
	tenantID := id.New()
	customerID := id.New()

	repo := newFakeRepo()
	customers := &fakeCustomers{existing: map[id.ID]id.ID{customerID: tenantID}}
	svc := newTestService(repo, customers, &fakeSeq{}, nil)

	inv := validInvoice(tenantID, customerID)
	require.NoError(t, svc.Create(ctx, tenantID, inv))

	paid := StatusPaid
	updated, err := svc.Update(ctx, tenantID, inv.ID, UpdateInput{Status: &paid})
	require.NoError(t, err)
	require.NotNil(t, updated.PaidAt)
}

func TestService_TenantIsolation(t *testing.T) {
	ctx := context.Background()
	tenantA := id.New()
	tenantB := id.New()
	customerID := id.New()

	repo := newFakeRepo()
	customers := &fakeCustomers{existing: map[id.ID]id.ID{customerID: tenantA}}
	svc := newTestService(repo, customers, &fakeSeq{}, nil)

	inv := validInvoice(tenantA, customerID)
	require.NoError(t, svc.Create(ctx, tenantA, inv))

	// Another tenant cannot see, update or delete it.
	_, err := svc.GetByID(ctx, tenantB, inv.ID)
	require.True(t, apperror.IsNotFound(err))

	sent := StatusSent
	_, err = svc.Update(ctx, tenantB, inv.ID, UpdateInput{Status: &sent})
	require.True(t, apperror.IsNotFound(err))

	err = svc.Delete(ctx, tenantB, inv.ID)
	require.True(t, apperror.IsNotFound(err))
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := id.New()
	customerID := id.New()

	repo := newFakeRepo()
	customers := &fakeCustomers{existing: map[id.ID]id.ID{customerID: tenantID}}
	svc := newTestService(repo, customers, &fakeSeq{}, nil)

	inv := validInvoice(tenantID, customerID)
	require.NoError(t, svc.Create(ctx, tenantID, inv))
	require.NoError(t, svc.Delete(ctx, tenantID, inv.ID))

	_, err := svc.GetByID(ctx, tenantID, inv.ID)
	require.True(t, apperror.IsNotFound(err))
}
