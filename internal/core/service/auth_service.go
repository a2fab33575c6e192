package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// bcryptCost matches the work factor the platform has always used.
const bcryptCost = 10

// AuthService implements registration, login, and password rotation.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidRole
	}
	if !domain.ValidPassword(input.Password) {
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Address:      input.Address,
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.users.Create(ctx, account)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// An unknown email reads the same as a wrong password.
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.ID, account.Role)
	if err != nil {
		return "", nil, err
	}

	return token, account, nil
}

// UpdatePassword checks the old password before validating the new one, so
// a wrong old password always fails with ErrInvalidCredentials even when
// the new password is also bad.
func (s *AuthService) UpdatePassword(ctx context.Context, accountID, oldPassword, newPassword string) error {
	account, err := s.users.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	if !domain.ValidPassword(newPassword) {
		return domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, accountID, string(hash))
}
