package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/core/tenant"
	"factura/internal/domain"
	"factura/internal/domain/catalogs/customer"
	"factura/internal/domain/catalogs/product"
	"factura/internal/infrastructure/http/v1/dto"
	"factura/internal/infrastructure/http/v1/middleware"
)

type lookupTxManager struct{}

func (lookupTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type customerRepoStub struct {
	customers map[id.ID]*customer.Customer
}

func newCustomerRepoStub() *customerRepoStub {
	return &customerRepoStub{customers: make(map[id.ID]*customer.Customer)}
}

func (r *customerRepoStub) Create(_ context.Context, tenantID id.ID, c *customer.Customer) error {
	cp := *c
	cp.TenantID = tenantID
	r.customers[cp.ID] = &cp
	return nil
}

func (r *customerRepoStub) GetByID(_ context.Context, tenantID, entityID id.ID) (*customer.Customer, error) {
	c, ok := r.customers[entityID]
	if !ok || c.TenantID != tenantID {
		return nil, apperror.NewNotFound("customer", entityID.String())
	}
	cp := *c
	return &cp, nil
}

func (r *customerRepoStub) Update(_ context.Context, tenantID id.ID, c *customer.Customer) error {
	existing, ok := r.customers[c.ID]
	if !ok || existing.TenantID != tenantID {
		return apperror.NewNotFound("customer", c.ID.String())
	}
	cp := *c
	r.customers[cp.ID] = &cp
	return nil
}

func (r *customerRepoStub) Delete(_ context.Context, tenantID, entityID id.ID) error {
	existing, ok := r.customers[entityID]
	if !ok || existing.TenantID != tenantID {
		return apperror.NewNotFound("customer", entityID.String())
	}
	delete(r.customers, entityID)
	return nil
}

func (r *customerRepoStub) List(_ context.Context, tenantID id.ID, f domain.ListFilter) (domain.ListResult[*customer.Customer], error) {
	result := domain.ListResult[*customer.Customer]{Limit: f.Limit, Offset: f.Offset}
	for _, c := range r.customers {
		if c.TenantID == tenantID {
			cp := *c
			result.Items = append(result.Items, &cp)
			result.TotalCount++
		}
	}
	return result, nil
}

func (r *customerRepoStub) Exists(_ context.Context, tenantID, entityID id.ID) (bool, error) {
	c, ok := r.customers[entityID]
	return ok && c.TenantID == tenantID, nil
}

func (r *customerRepoStub) FindByEmail(_ context.Context, tenantID id.ID, email string) (*customer.Customer, error) {
	for _, c := range r.customers {
		if c.TenantID == tenantID && c.Email != nil && *c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("customer", email)
}

func (r *customerRepoStub) GetForUpdate(ctx context.Context, tenantID, entityID id.ID) (*customer.Customer, error) {
	return r.GetByID(ctx, tenantID, entityID)
}

var _ customer.Repository = (*customerRepoStub)(nil)

type productRepoStub struct {
	products map[id.ID]*product.Product
}

func newProductRepoStub() *productRepoStub {
	return &productRepoStub{products: make(map[id.ID]*product.Product)}
}

func (r *productRepoStub) Create(_ context.Context, tenantID id.ID, p *product.Product) error {
	cp := *p
	cp.TenantID = tenantID
	r.products[cp.ID] = &cp
	return nil
}

func (r *productRepoStub) GetByID(_ context.Context, tenantID, entityID id.ID) (*product.Product, error) {
	p, ok := r.products[entityID]
	if !ok || p.TenantID != tenantID {
		return nil, apperror.NewNotFound("product", entityID.String())
	}
	cp := *p
	return &cp, nil
}

func (r *productRepoStub) Update(_ context.Context, tenantID id.ID, p *product.Product) error {
	existing, ok := r.products[p.ID]
	if !ok || existing.TenantID != tenantID {
		return apperror.NewNotFound("product", p.ID.String())
	}
	cp := *p
	r.products[cp.ID] = &cp
	return nil
}

func (r *productRepoStub) Delete(_ context.Context, tenantID, entityID id.ID) error {
	existing, ok := r.products[entityID]
	if !ok || existing.TenantID != tenantID {
		return apperror.NewNotFound("product", entityID.String())
	}
	delete(r.products, entityID)
	return nil
}

func (r *productRepoStub) List(_ context.Context, tenantID id.ID, f domain.ListFilter) (domain.ListResult[*product.Product], error) {
	result := domain.ListResult[*product.Product]{Limit: f.Limit, Offset: f.Offset}
	for _, p := range r.products {
		if p.TenantID == tenantID {
			cp := *p
			result.Items = append(result.Items, &cp)
			result.TotalCount++
		}
	}
	return result, nil
}

func (r *productRepoStub) Exists(_ context.Context, tenantID, entityID id.ID) (bool, error) {
	p, ok := r.products[entityID]
	return ok && p.TenantID == tenantID, nil
}

func (r *productRepoStub) FindBySKU(_ context.Context, tenantID id.ID, sku string) (*product.Product, error) {
	for _, p := range r.products {
		if p.TenantID == tenantID && p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("product", sku)
}

func (r *productRepoStub) GetForUpdate(ctx context.Context, tenantID, entityID id.ID) (*product.Product, error) {
	return r.GetByID(ctx, tenantID, entityID)
}

var _ product.Repository = (*productRepoStub)(nil)

// newLookupRouter wires the catalog routes the way the v1 router does:
// the static lookup path registered alongside the /:id path.
func newLookupRouter(tenantID id.ID, custSvc *customer.Service, prodSvc *product.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(tenant.WithID(c.Request.Context(), tenantID))
		c.Next()
	})

	base := NewBaseHandler()

	customerHandler := NewCustomerHandler(base, custSvc)
	customers := router.Group("/customers")
	customers.GET("/by-email", customerHandler.GetByEmail)
	customers.GET("/:id", customerHandler.Get)

	productHandler := NewProductHandler(base, prodSvc)
	products := router.Group("/products")
	products.GET("/by-sku", productHandler.GetBySKU)
	products.GET("/:id", productHandler.Get)

	return router
}

func performLookup(router *gin.Engine, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(rec, req)
	return rec
}

func TestCustomerHandler_GetByEmail(t *testing.T) {
	ctx := context.Background()
	tenantID := id.New()
	svc := customer.NewService(newCustomerRepoStub(), lookupTxManager{})
	router := newLookupRouter(tenantID, svc, product.NewService(newProductRepoStub(), lookupTxManager{}))

	email := "billing@acme.dz"
	c := customer.NewCustomer(tenantID, "Acme")
	c.Email = &email
	require.NoError(t, svc.Create(ctx, tenantID, c))

	rec := performLookup(router, "/customers/by-email?email=billing@acme.dz")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.CustomerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, c.ID.String(), resp.ID)
	require.Equal(t, "Acme", resp.Name)
}

func TestCustomerHandler_GetByEmail_NotFound(t *testing.T) {
	tenantID := id.New()
	svc := customer.NewService(newCustomerRepoStub(), lookupTxManager{})
	router := newLookupRouter(tenantID, svc, product.NewService(newProductRepoStub(), lookupTxManager{}))

	rec := performLookup(router, "/customers/by-email?email=nobody@acme.dz")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomerHandler_GetByEmail_MissingParam(t *testing.T) {
	tenantID := id.New()
	svc := customer.NewService(newCustomerRepoStub(), lookupTxManager{})
	router := newLookupRouter(tenantID, svc, product.NewService(newProductRepoStub(), lookupTxManager{}))

	rec := performLookup(router, "/customers/by-email")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCustomerHandler_GetByEmail_TenantIsolation(t *testing.T) {
	ctx := context.Background()
	tenantA := id.New()
	tenantB := id.New()
	svc := customer.NewService(newCustomerRepoStub(), lookupTxManager{})
	router := newLookupRouter(tenantA, svc, product.NewService(newProductRepoStub(), lookupTxManager{}))

	email := "billing@acme.dz"
	c := customer.NewCustomer(tenantB, "Acme")
	c.Email = &email
	require.NoError(t, svc.Create(ctx, tenantB, c))

	// The row belongs to another tenant, so the lookup must come back empty.
	rec := performLookup(router, "/customers/by-email?email=billing@acme.dz")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_GetBySKU(t *testing.T) {
	ctx := context.Background()
	tenantID := id.New()
	svc := product.NewService(newProductRepoStub(), lookupTxManager{})
	router := newLookupRouter(tenantID, customer.NewService(newCustomerRepoStub(), lookupTxManager{}), svc)

	p := product.NewProduct(tenantID, "SKU-001", "Widget")
	require.NoError(t, svc.Create(ctx, tenantID, p))

	rec := performLookup(router, "/products/by-sku?sku=SKU-001")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, p.ID.String(), resp.ID)
	require.Equal(t, "SKU-001", resp.SKU)
}

func TestProductHandler_GetBySKU_MissingParam(t *testing.T) {
	tenantID := id.New()
	svc := product.NewService(newProductRepoStub(), lookupTxManager{})
	router := newLookupRouter(tenantID, customer.NewService(newCustomerRepoStub(), lookupTxManager{}), svc)

	rec := performLookup(router, "/products/by-sku")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestProductHandler_GetBySKU_NotFound(t *testing.T) {
	tenantID := id.New()
	svc := product.NewService(newProductRepoStub(), lookupTxManager{})
	router := newLookupRouter(tenantID, customer.NewService(newCustomerRepoStub(), lookupTxManager{}), svc)

	rec := performLookup(router, "/products/by-sku?sku=SKU-404")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
