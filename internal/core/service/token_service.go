package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// TokenService issues and verifies HS256 session tokens. Tokens are
// stateless: the account id and role travel as claims and expiry is the
// only termination mechanism.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) Issue(accountID, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  accountID,
		"role": role,
		"exp":  jwt.NewNumericDate(time.Now().Add(s.ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

func (s *TokenService) Verify(token string) (ports.Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ports.Identity{}, domain.ErrTokenExpired
		}
		return ports.Identity{}, domain.ErrTokenInvalid
	}
	if !tkn.Valid {
		return ports.Identity{}, domain.ErrTokenInvalid
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return ports.Identity{}, domain.ErrTokenInvalid
	}

	return ports.Identity{AccountID: sub, Role: role}, nil
}
