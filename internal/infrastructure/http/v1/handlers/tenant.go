package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/domain/tenants"
	"factura/internal/infrastructure/http/v1/dto"
)

// TenantHandler handles tenant registry endpoints. All routes are admin only.
type TenantHandler struct {
	*BaseHandler
	registry *tenants.Service
}

// NewTenantHandler creates a new tenant handler.
func NewTenantHandler(base *BaseHandler, registry *tenants.Service) *TenantHandler {
	return &TenantHandler{
		BaseHandler: base,
		registry:    registry,
	}
}

// Create handles POST /tenants
func (h *TenantHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateTenantRequest
	if !h.BindJSON(c, &req) {
		return
	}

	t := req.ToTenant()
	if err := h.registry.Create(ctx, t); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromTenant(t))
}

// List handles GET /tenants
func (h *TenantHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	list, err := h.registry.List(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(list))
	for i, t := range list {
		items[i] = dto.FromTenant(t)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: int64(len(list)),
		Limit:      len(list),
	})
}

// Get handles GET /tenants/:id
func (h *TenantHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	tenantID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	t, err := h.registry.GetByID(ctx, tenantID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTenant(t))
}

// Suspend handles POST /tenants/:id/suspend
func (h *TenantHandler) Suspend(c *gin.Context) {
	h.setStatus(c, h.registry.Suspend)
}

// Activate handles POST /tenants/:id/activate
func (h *TenantHandler) Activate(c *gin.Context) {
	h.setStatus(c, h.registry.Activate)
}

func (h *TenantHandler) setStatus(c *gin.Context, fn func(ctx context.Context, tenantID id.ID) error) {
	ctx := c.Request.Context()

	tenantID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := fn(ctx, tenantID); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
