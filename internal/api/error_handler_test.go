package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

func handleError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHTTPErrorHandler(zerolog.Nop())
	h(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp.Error
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrTokenExpired, http.StatusUnauthorized},
		{domain.ErrTokenInvalid, http.StatusUnauthorized},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrNoStoreOwned, http.StatusForbidden},
		{domain.ErrWeakPassword, http.StatusBadRequest},
		{domain.ErrInvalidRole, http.StatusBadRequest},
		{domain.ErrInvalidScore, http.StatusBadRequest},
		{domain.ErrInvalidOwner, http.StatusBadRequest},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrStoreNotFound, http.StatusNotFound},
		{domain.ErrRatingNotFound, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrStoreExists, http.StatusConflict},
	}

	for _, tc := range cases {
		code, msg := handleError(t, tc.err)
		if code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, code)
		}
		if msg != tc.err.Error() {
			t.Fatalf("%v: expected message %q, got %q", tc.err, tc.err.Error(), msg)
		}
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	code, msg := handleError(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"))
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if msg != "missing authorization header" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestHTTPErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	code, msg := handleError(t, errors.New("mongo: connection refused"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal details leaked to the client: %q", msg)
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("submit rating"), domain.ErrStoreNotFound)
	code, _ := handleError(t, wrapped)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped domain error, got %d", code)
	}
}
