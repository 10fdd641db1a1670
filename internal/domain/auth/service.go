package auth

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/core/tx"
	"factura/internal/domain/tenants"
	"factura/pkg/logger"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	MaxLoginAttempts  int
	LockDuration      time.Duration
	PasswordMinLength int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxLoginAttempts:  5,
		LockDuration:      15 * time.Minute,
		PasswordMinLength: 8,
	}
}

// Service provides authentication logic.
type Service struct {
	repo       Repository
	tenants    *tenants.Service
	jwtService *JWTService
	txManager  tx.Manager
	config     ServiceConfig
}

// NewService creates a new auth service.
func NewService(
	repo Repository,
	tenantService *tenants.Service,
	jwtService *JWTService,
	txManager tx.Manager,
	config ServiceConfig,
) *Service {
	return &Service{
		repo:       repo,
		tenants:    tenantService,
		jwtService: jwtService,
		txManager:  txManager,
		config:     config,
	}
}

// Register registers a new user within the tenant.
func (s *Service) Register(ctx context.Context, tenantID id.ID, req RegisterRequest) (*User, error) {
	if !emailRE.MatchString(req.Email) {
		return nil, apperror.NewValidation("invalid email format").WithDetail("field", "email")
	}
	if len(req.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	if err := s.tenants.RequireActive(ctx, tenantID); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, tenantID, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, apperror.NewDuplicate("user", "email", req.Email)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("hash password: %w", err))
	}

	user := NewUser(tenantID, req.Email, string(passwordHash))
	user.FullName = req.FullName
	user.IsAdmin = req.IsAdmin

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered",
		"user_id", user.ID,
		"tenant_id", tenantID)

	return user, nil
}

// Login authenticates a user by tenant slug, email and password.
// Failed attempts are counted and the account locks temporarily after
// too many of them.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Token, *User, error) {
	tenant, err := s.tenants.GetBySlug(ctx, creds.TenantSlug)
	if err != nil {
		if apperror.IsNotFound(err) {
			// Same answer as a wrong password, do not reveal which part failed.
			return nil, nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, nil, err
	}
	if !tenant.IsActive() {
		return nil, nil, apperror.NewForbidden("tenant is suspended")
	}

	user, err := s.repo.GetByEmail(ctx, tenant.ID, creds.Email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, nil, err
	}

	if err := user.CanLogin(); err != nil {
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		user.RecordFailedLogin(s.config.MaxLoginAttempts, s.config.LockDuration)
		if saveErr := s.saveUser(ctx, user); saveErr != nil {
			logger.Warn(ctx, "failed to record login attempt", "error", saveErr)
		}
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	user.RecordSuccessfulLogin()
	if err := s.saveUser(ctx, user); err != nil {
		logger.Warn(ctx, "failed to record successful login", "error", err)
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(
		user.ID.String(), user.TenantID.String(), user.Email, user.IsAdmin,
	)
	if err != nil {
		return nil, nil, apperror.NewInternal(fmt.Errorf("generate access token: %w", err))
	}

	logger.Info(ctx, "user logged in",
		"user_id", user.ID,
		"tenant_id", user.TenantID)

	return &Token{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, user, nil
}

// GetByID retrieves a user within the tenant.
func (s *Service) GetByID(ctx context.Context, tenantID, userID id.ID) (*User, error) {
	user, err := s.repo.GetByID(ctx, tenantID, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("user", userID.String())
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) saveUser(ctx context.Context, user *User) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, user)
	})
}
