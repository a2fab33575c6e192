package domain

import "time"

// Store is a rateable entity owned by exactly one store_owner account.
// OwnerID is validated against the owner's role at creation time only;
// later role changes do not revoke existing stores.
type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}
