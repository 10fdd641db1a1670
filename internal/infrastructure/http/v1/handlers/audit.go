package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/infrastructure/storage/postgres"
)

// AuditHandler exposes change history for audited entities.
type AuditHandler struct {
	*BaseHandler
	audit *postgres.AuditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, audit *postgres.AuditService) *AuditHandler {
	return &AuditHandler{
		BaseHandler: base,
		audit:       audit,
	}
}

// EntityHistory returns a handler for GET /{entity}/:id/history.
func (h *AuditHandler) EntityHistory(entityType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		tenantID, ok := h.TenantID(c)
		if !ok {
			return
		}

		entityID, err := id.Parse(c.Param("id"))
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid id format"))
			return
		}

		limit := h.ParseIntQuery(c, "limit", 50)
		if limit <= 0 || limit > 100 {
			limit = 50
		}

		entries, err := h.audit.GetEntityHistory(ctx, tenantID, entityType, entityID, limit)
		if err != nil {
			h.Error(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items":      entries,
			"totalCount": len(entries),
		})
	}
}
