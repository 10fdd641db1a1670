package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/domain/catalogs/customer"
	"factura/internal/infrastructure/storage/postgres"
)

const customerTable = "customers"

var _ customer.Repository = (*CustomerRepo)(nil)

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txm *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*customer.Customer](
			txm,
			customerTable,
			postgres.ExtractDBColumns[customer.Customer](),
			[]string{"name", "email", "nif"},
			func() *customer.Customer { return &customer.Customer{} },
		),
	}
}

// FindByEmail retrieves a customer by email within the tenant.
func (r *CustomerRepo) FindByEmail(ctx context.Context, tenantID id.ID, email string) (*customer.Customer, error) {
	q := r.baseSelect(tenantID).
		Where(squirrel.Eq{"email": email}).
		Limit(1)

	c, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("customer", email)
		}
		return nil, err
	}
	return c, nil
}
