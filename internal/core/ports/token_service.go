package ports

// Identity is the verified subject of a session token.
type Identity struct {
	AccountID string
	Role      string
}

// TokenService issues and verifies stateless signed session credentials.
// Verification is side-effect-free; expiry is the only termination
// mechanism (no revocation list).
type TokenService interface {
	// Issue produces a signed token carrying the account id, role, and an
	// expiry derived from the configured TTL.
	Issue(accountID, role string) (string, error)
	// Verify returns the embedded identity. It fails with
	// domain.ErrTokenExpired when past expiry and domain.ErrTokenInvalid
	// for any signature or structural problem.
	Verify(token string) (Identity, error)
}
