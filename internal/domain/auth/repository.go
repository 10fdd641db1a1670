package auth

import (
	"context"

	"factura/internal/core/id"
)

// Repository defines user storage operations. Users are tenant-scoped:
// every lookup carries the tenant and never sees other tenants' accounts.
type Repository interface {
	// Create creates a new user.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID within the tenant.
	GetByID(ctx context.Context, tenantID, userID id.ID) (*User, error)

	// GetByEmail retrieves a user by email within the tenant.
	GetByEmail(ctx context.Context, tenantID id.ID, email string) (*User, error)

	// Update updates user data.
	Update(ctx context.Context, user *User) error

	// ExistsByEmail checks if the email is taken within the tenant.
	ExistsByEmail(ctx context.Context, tenantID id.ID, email string) (bool, error)
}
