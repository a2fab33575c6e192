package ports

import (
	"context"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

// RegisterInput carries the fields for self-registration and admin
// provisioning. The transport layer validates shape (lengths, email
// format); the service validates role and password policy.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     string
}

// AuthService implements registration, login, and password rotation.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	// Login returns a signed session token and the authenticated account.
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
	// UpdatePassword verifies oldPassword against the stored hash before
	// validating and storing newPassword.
	UpdatePassword(ctx context.Context, accountID, oldPassword, newPassword string) error
}
