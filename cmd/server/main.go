// Package main is the entry point for the factura API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"factura/internal/domain/auth"
	"factura/internal/domain/catalogs/customer"
	"factura/internal/domain/catalogs/product"
	"factura/internal/domain/documents/invoice"
	"factura/internal/domain/tenants"
	v1 "factura/internal/infrastructure/http/v1"
	"factura/internal/infrastructure/storage/postgres"
	"factura/internal/infrastructure/storage/postgres/auth_repo"
	"factura/internal/infrastructure/storage/postgres/catalog_repo"
	"factura/internal/infrastructure/storage/postgres/document_repo"
	"factura/internal/infrastructure/storage/postgres/tenant_repo"
	"factura/pkg/logger"
)

func main() {
	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting factura server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 25); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Tenant registry ---
	tenantRepo := tenant_repo.NewTenantRepo(txManager)
	tenantService := tenants.NewService(tenantRepo, txManager)

	// --- JWT Service ---
	jwtSecret := getEnv("JWT_SECRET", "your-secret-key-change-in-production")
	jwtConfig := auth.DefaultJWTConfig(jwtSecret)
	if ttl := getEnvDuration("JWT_ACCESS_TTL", 0); ttl > 0 {
		jwtConfig.AccessTokenTTL = ttl
	}
	jwtService := auth.NewJWTService(jwtConfig)

	// --- Auth Service ---
	userRepo := auth_repo.NewUserRepo(txManager)
	authService := auth.NewService(userRepo, tenantService, jwtService, txManager, auth.DefaultServiceConfig())

	// --- Catalog services ---
	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	customerService := customer.NewService(customerRepo, txManager)

	productRepo := catalog_repo.NewProductRepo(txManager)
	productService := product.NewService(productRepo, txManager)

	// --- Invoice service ---
	transitionPolicy, err := invoice.NewTransitionPolicy(transitionExpr(log))
	if err != nil {
		log.Fatalw("invalid transition policy", "error", err)
	}

	sequenceStore := postgres.NewSequenceStore(txManager)
	invoiceRepo := document_repo.NewInvoiceRepo(txManager)
	invoiceService := invoice.NewService(invoiceRepo, customerRepo, sequenceStore, txManager, transitionPolicy)

	// --- Audit ---
	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}
	registerAuditHooks(invoiceService, auditService)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:            pool,
		Logger:          log,
		JWTValidator:    jwtService,
		AuthService:     authService,
		TenantService:   tenantService,
		CustomerService: customerService,
		ProductService:  productService,
		InvoiceService:  invoiceService,
		AuditService:    auditService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

// transitionExpr resolves the invoice status transition policy from the
// environment. "strict" enforces the draft->sent->paid lifecycle,
// anything else allows free transitions.
func transitionExpr(log *logger.Logger) string {
	mode := getEnv("INVOICE_TRANSITION_POLICY", "permissive")
	switch mode {
	case "strict":
		return invoice.StrictTransitionExpr
	case "permissive":
		return invoice.PermissiveTransitionExpr
	default:
		log.Warnw("unknown transition policy, falling back to permissive", "mode", mode)
		return invoice.PermissiveTransitionExpr
	}
}

// registerAuditHooks records invoice changes in the audit log. Failures
// only produce warnings, the business operation is already committed.
func registerAuditHooks(svc *invoice.Service, audit *postgres.AuditService) {
	svc.Hooks().OnAfterCreate(func(ctx context.Context, inv *invoice.Invoice) error {
		return audit.LogChange(ctx, inv.TenantID, "invoice", inv.ID, postgres.AuditActionCreate, map[string]any{
			"invoice_number": inv.InvoiceNumber,
			"total_amount":   inv.TotalAmount,
			"status":         inv.Status,
		})
	})
	svc.Hooks().OnAfterUpdate(func(ctx context.Context, inv *invoice.Invoice) error {
		return audit.LogChange(ctx, inv.TenantID, "invoice", inv.ID, postgres.AuditActionUpdate, map[string]any{
			"status":   inv.Status,
			"due_date": inv.DueDate,
			"notes":    inv.Notes,
		})
	})
	svc.Hooks().OnAfterDelete(func(ctx context.Context, inv *invoice.Invoice) error {
		return audit.LogChange(ctx, inv.TenantID, "invoice", inv.ID, postgres.AuditActionDelete, map[string]any{
			"invoice_number": inv.InvoiceNumber,
		})
	})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
