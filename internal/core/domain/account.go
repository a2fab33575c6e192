package domain

import "time"

const (
	RoleAdmin      = "admin"
	RoleUser       = "user"
	RoleStoreOwner = "store_owner"
)

// ValidRole reports whether role is one of the three fixed platform roles.
// Roles are immutable after account creation.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleUser, RoleStoreOwner:
		return true
	}
	return false
}

// Account models a registered identity with exactly one role.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Address      string    `json:"address,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
