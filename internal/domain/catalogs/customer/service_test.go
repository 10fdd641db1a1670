package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/domain"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	customers map[id.ID]*Customer
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{customers: make(map[id.ID]*Customer)}
}

func (r *fakeRepo) Create(_ context.Context, tenantID id.ID, c *Customer) error {
	cp := *c
	cp.TenantID = tenantID
	r.customers[cp.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, tenantID, entityID id.ID) (*Customer, error) {
	c, ok := r.customers[entityID]
	if !ok || c.TenantID != tenantID {
		return nil, apperror.NewNotFound("customer", entityID.String())
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) Update(_ context.Context, tenantID id.ID, c *Customer) error {
	existing, ok := r.customers[c.ID]
	if !ok || existing.TenantID != tenantID {
		return apperror.NewNotFound("customer", c.ID.String())
	}
	cp := *c
	r.customers[cp.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, tenantID, entityID id.ID) error {
	existing, ok := r.customers[entityID]
	if !ok || existing.TenantID != tenantID {
		return apperror.NewNotFound("customer", entityID.String())
	}
	delete(r.customers, entityID)
	return nil
}

func (r *fakeRepo) List(_ context.Context, tenantID id.ID, f domain.ListFilter) (domain.ListResult[*Customer], error) {
	result := domain.ListResult[*Customer]{Limit: f.Limit, Offset: f.Offset}
	for _, c := range r.customers {
		if c.TenantID == tenantID {
			cp := *c
			result.Items = append(result.Items, &cp)
			result.TotalCount++
		}
	}
	return result, nil
}

func (r *fakeRepo) Exists(_ context.Context, tenantID, entityID id.ID) (bool, error) {
	c, ok := r.customers[entityID]
	return ok && c.TenantID == tenantID, nil
}

func (r *fakeRepo) FindByEmail(_ context.Context, tenantID id.ID, email string) (*Customer, error) {
	for _, c := range r.customers {
		if c.TenantID == tenantID && c.Email != nil && *c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("customer", email)
}

func (r *fakeRepo) GetForUpdate(ctx context.Context, tenantID, entityID id.ID) (*Customer, error) {
	return r.GetByID(ctx, tenantID, entityID)
}

var _ Repository = (*fakeRepo)(nil)

func withEmail(c *Customer, email string) *Customer {
	c.Email = &email
	return c
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	tenantID := id.New()
	svc := NewService(newFakeRepo(), fakeTxManager{})

	first := withEmail(NewCustomer(tenantID, "Acme"), "billing@acme.dz")
	require.NoError(t, svc.Create(ctx, tenantID, first))

	second := withEmail(NewCustomer(tenantID, "Acme Clone"), "billing@acme.dz")
	err := svc.Create(ctx, tenantID, second)
	require.Error(t, err)
	require.True(t, apperror.IsConflict(err))
}

func TestService_Create_SameEmailDifferentTenants(t *testing.T) {
	ctx := context.Background()
	tenantA := id.New()
	tenantB := id.New()
	svc := NewService(newFakeRepo(), fakeTxManager{})

	require.NoError(t, svc.Create(ctx, tenantA, withEmail(NewCustomer(tenantA, "Acme"), "billing@acme.dz")))
	require.NoError(t, svc.Create(ctx, tenantB, withEmail(NewCustomer(tenantB, "Acme"), "billing@acme.dz")))
}

func TestService_Update_KeepOwnEmail(t *testing.T) {
	ctx := context.Background()
	tenantID := id.New()
	svc := NewService(newFakeRepo(), fakeTxManager{})

	c := withEmail(NewCustomer(tenantID, "Acme"), "billing@acme.dz")
	require.NoError(t, svc.Create(ctx, tenantID, c))

	// Updating without changing the email must not trip the uniqueness hook.
	c.Name = "Acme SARL"
	require.NoError(t, svc.Update(ctx, tenantID, c))
}

func TestService_TenantIsolation(t *testing.T) {
	ctx := context.Background()
	tenantA := id.New()
	tenantB := id.New()
	svc := NewService(newFakeRepo(), fakeTxManager{})

	c := NewCustomer(tenantA, "Acme")
	require.NoError(t, svc.Create(ctx, tenantA, c))

	_, err := svc.GetByID(ctx, tenantB, c.ID)
	require.True(t, apperror.IsNotFound(err))

	err = svc.Delete(ctx, tenantB, c.ID)
	require.True(t, apperror.IsNotFound(err))
}
