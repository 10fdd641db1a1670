package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/domain/catalogs/customer"
	"factura/internal/infrastructure/http/v1/dto"
)

// CustomerHandler handles customer endpoints.
type CustomerHandler struct {
	*CatalogHandler[*customer.Customer, dto.CreateCustomerRequest, dto.UpdateCustomerRequest]
	service *customer.Service
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(base *BaseHandler, service *customer.Service) *CustomerHandler {
	return &CustomerHandler{
		CatalogHandler: NewCatalogHandler(base, CatalogHandlerConfig[*customer.Customer, dto.CreateCustomerRequest, dto.UpdateCustomerRequest]{
			Service:    service.CatalogService,
			EntityName: "customer",
			MapCreateDTO: func(tenantID id.ID, req dto.CreateCustomerRequest) *customer.Customer {
				return req.ToCustomer(tenantID)
			},
			MapUpdateDTO: func(req dto.UpdateCustomerRequest, existing *customer.Customer) *customer.Customer {
				return req.Apply(existing)
			},
			MapToDTO: func(c *customer.Customer) any {
				return dto.FromCustomer(c)
			},
		}),
		service: service,
	}
}

// GetByEmail handles GET /customers/by-email?email=...
func (h *CustomerHandler) GetByEmail(c *gin.Context) {
	ctx := c.Request.Context()

	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	email := c.Query("email")
	if email == "" {
		h.Error(c, apperror.NewValidation("email query parameter is required"))
		return
	}

	cust, err := h.service.FindByEmail(ctx, tenantID, email)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCustomer(cust))
}
