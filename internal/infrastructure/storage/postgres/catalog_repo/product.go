package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/domain/catalogs/product"
	"factura/internal/infrastructure/storage/postgres"
)

const productTable = "products"

var _ product.Repository = (*ProductRepo)(nil)

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*product.Product](
			txm,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			[]string{"name", "sku", "barcode"},
			func() *product.Product { return &product.Product{} },
		),
	}
}

// FindBySKU retrieves a product by SKU within the tenant.
func (r *ProductRepo) FindBySKU(ctx context.Context, tenantID id.ID, sku string) (*product.Product, error) {
	q := r.baseSelect(tenantID).
		Where(squirrel.Eq{"sku": sku}).
		Limit(1)

	p, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", sku)
		}
		return nil, err
	}
	return p, nil
}
