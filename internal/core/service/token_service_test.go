package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("acc_1", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	identity, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if identity.AccountID != "acc_1" {
		t.Fatalf("unexpected account id: %s", identity.AccountID)
	}
	if identity.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", identity.Role)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "acc_1",
		"role": domain.RoleUser,
		"exp":  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	signed, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Verify(signed); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_NearExpiryStillValid(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	almost := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "acc_1",
		"role": domain.RoleAdmin,
		"exp":  jwt.NewNumericDate(time.Now().Add(time.Second)),
	})
	signed, err := almost.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Verify(signed); err != nil {
		t.Fatalf("token one second before expiry should verify, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue("acc_1", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Verify(token); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	if _, err := svc.Verify("not-a-token"); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_MissingClaims(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": domain.RoleUser,
		"exp":  jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := noSub.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Verify(signed); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for missing sub, got %v", err)
	}
}
