package v1

import (
	"github.com/gin-gonic/gin"

	"factura/internal/domain/auth"
	"factura/internal/domain/catalogs/customer"
	"factura/internal/domain/catalogs/product"
	"factura/internal/domain/documents/invoice"
	"factura/internal/domain/tenants"
	"factura/internal/infrastructure/http/v1/handlers"
	"factura/internal/infrastructure/http/v1/middleware"
	"factura/internal/infrastructure/storage/postgres"
	"factura/pkg/logger"
)

// RouterConfig holds everything the HTTP layer depends on.
type RouterConfig struct {
	// Pool is the shared database pool (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// TenantService is the tenant registry (admin routes + active check)
	TenantService *tenants.Service

	// Domain services
	CustomerService *customer.Service
	ProductService  *product.Service
	InvoiceService  *invoice.Service

	// AuditService exposes entity change history
	AuditService *postgres.AuditService
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth, no tenant required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()

	api := router.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

		// Public: login resolves the tenant from the submitted slug
		api.POST("/auth/login", authHandler.Login)

		// Everything else requires a valid token; the tenant comes from
		// the token and must be active.
		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))
		protected.Use(middleware.UserContext())
		protected.Use(middleware.RequireActiveTenant(cfg.TenantService))

		protected.GET("/auth/me", authHandler.Me)
		protected.POST("/auth/register", middleware.RequireAdmin(), authHandler.Register)

		registerTenantRoutes(protected, baseHandler, cfg)
		registerCatalogRoutes(protected, baseHandler, cfg)
		registerInvoiceRoutes(protected, baseHandler, cfg)
	}

	return router
}

// registerTenantRoutes registers tenant registry endpoints (admin only).
func registerTenantRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewTenantHandler(base, cfg.TenantService)

	group := rg.Group("/tenants")
	group.Use(middleware.RequireAdmin())
	{
		group.GET("", handler.List)
		group.POST("", handler.Create)
		group.GET("/:id", handler.Get)
		group.POST("/:id/suspend", handler.Suspend)
		group.POST("/:id/activate", handler.Activate)
	}
}

// registerCatalogRoutes registers catalog endpoints. Lookup routes go
// in before the CRUD set so /:id never shadows them.
func registerCatalogRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	customerHandler := handlers.NewCustomerHandler(base, cfg.CustomerService)
	customers := rg.Group("/customers")
	customers.GET("/by-email", customerHandler.GetByEmail)
	RegisterCatalogRoutes(customers, customerHandler)

	productHandler := handlers.NewProductHandler(base, cfg.ProductService)
	products := rg.Group("/products")
	products.GET("/by-sku", productHandler.GetBySKU)
	RegisterCatalogRoutes(products, productHandler)
}

// registerInvoiceRoutes registers invoice endpoints.
func registerInvoiceRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewInvoiceHandler(base, cfg.InvoiceService)

	group := rg.Group("/invoices")
	{
		group.GET("", handler.List)
		group.POST("", handler.Create)
		group.GET("/:id", handler.Get)
		group.GET("/by-number/:number", handler.GetByNumber)
		group.PUT("/:id", handler.Update)
		group.DELETE("/:id", handler.Delete)
	}

	if cfg.AuditService != nil {
		auditHandler := handlers.NewAuditHandler(base, cfg.AuditService)
		group.GET("/:id/history", auditHandler.EntityHistory("invoice"))
	}
}
