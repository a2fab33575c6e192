package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

type stubStatsService struct {
	getStatsFn func(ctx context.Context) (*ports.Stats, error)
}

func (s *stubStatsService) GetStats(ctx context.Context) (*ports.Stats, error) {
	return s.getStatsFn(ctx)
}

func TestAdminHandler_AddUser_StripsPasswordHash(t *testing.T) {
	e := newEcho()
	directory := &stubDirectoryService{
		addUserFn: func(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
			return &domain.Account{
				ID:           "acc_1",
				Name:         input.Name,
				Email:        input.Email,
				Role:         input.Role,
				PasswordHash: "$2a$10$notforclients",
			}, nil
		},
	}
	handler := NewAdminHandler(directory, &stubStatsService{})

	body := strings.NewReader(`{"name":"` + validName + `","email":"new@example.com","password":"Sup3rS3cret!","role":"store_owner"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/add-user", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "admin_1", domain.RoleAdmin)

	if err := handler.AddUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "notforclients") {
		t.Fatalf("response leaks the password hash: %s", rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["role"] != domain.RoleStoreOwner {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
}

func TestAdminHandler_AddStore_Success(t *testing.T) {
	e := newEcho()
	directory := &stubDirectoryService{
		addStoreFn: func(ctx context.Context, input ports.AddStoreInput) (*domain.Store, error) {
			if input.OwnerID != "owner_1" {
				t.Fatalf("unexpected owner id: %s", input.OwnerID)
			}
			return &domain.Store{ID: "s1", Name: input.Name, Email: input.Email, Address: input.Address, OwnerID: input.OwnerID}, nil
		},
	}
	handler := NewAdminHandler(directory, &stubStatsService{})

	body := strings.NewReader(`{"name":"Corner Groceries","email":"corner@example.com","address":"12 Baker Street","owner_id":"owner_1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/add-store", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "admin_1", domain.RoleAdmin)

	if err := handler.AddStore(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAdminHandler_AddStore_InvalidOwner(t *testing.T) {
	e := newEcho()
	directory := &stubDirectoryService{
		addStoreFn: func(ctx context.Context, input ports.AddStoreInput) (*domain.Store, error) {
			return nil, domain.ErrInvalidOwner
		},
	}
	handler := NewAdminHandler(directory, &stubStatsService{})

	body := strings.NewReader(`{"name":"Corner Groceries","email":"corner@example.com","address":"12 Baker Street","owner_id":"plain_user"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/add-store", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "admin_1", domain.RoleAdmin)

	if err := handler.AddStore(c); !errors.Is(err, domain.ErrInvalidOwner) {
		t.Fatalf("expected ErrInvalidOwner, got %v", err)
	}
}

func TestAdminHandler_Stats(t *testing.T) {
	e := newEcho()
	stats := &stubStatsService{
		getStatsFn: func(ctx context.Context) (*ports.Stats, error) {
			return &ports.Stats{TotalUsers: 12, TotalStores: 4, TotalRatings: 37}, nil
		},
	}
	handler := NewAdminHandler(&stubDirectoryService{}, stats)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "admin_1", domain.RoleAdmin)

	if err := handler.Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var out ports.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.TotalUsers != 12 || out.TotalStores != 4 || out.TotalRatings != 37 {
		t.Fatalf("unexpected stats payload: %+v", out)
	}
}

func TestAdminHandler_ListUsers_PassesRoleFilter(t *testing.T) {
	e := newEcho()
	directory := &stubDirectoryService{
		listAccountsFn: func(ctx context.Context, role string) ([]*domain.Account, error) {
			if role != domain.RoleStoreOwner {
				t.Fatalf("unexpected role filter: %q", role)
			}
			return []*domain.Account{{ID: "acc_1", Name: "Owner", Email: "o@example.com", Role: role}}, nil
		},
	}
	handler := NewAdminHandler(directory, &stubStatsService{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users?role=store_owner", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "admin_1", domain.RoleAdmin)

	if err := handler.ListUsers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var out []accountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(out) != 1 || out[0].Role != domain.RoleStoreOwner {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestAdminHandler_GetUserDetails_OwnerAverage(t *testing.T) {
	e := newEcho()
	avg := 4.33
	directory := &stubDirectoryService{
		getAccountDetailsFn: func(ctx context.Context, accountID string) (*ports.AccountDetails, error) {
			return &ports.AccountDetails{
				Account:       &domain.Account{ID: accountID, Name: "Owner", Email: "o@example.com", Role: domain.RoleStoreOwner},
				AverageRating: &avg,
				RatingCount:   3,
			}, nil
		},
	}
	handler := NewAdminHandler(directory, &stubStatsService{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/user/acc_1", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "admin_1", domain.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("acc_1")

	if err := handler.GetUserDetails(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["average_rating"] != "4.33" {
		t.Fatalf("expected average 4.33, got %v", resp["average_rating"])
	}
}

func TestAdminHandler_GetUserDetails_OwnerWithoutRatings(t *testing.T) {
	e := newEcho()
	directory := &stubDirectoryService{
		getAccountDetailsFn: func(ctx context.Context, accountID string) (*ports.AccountDetails, error) {
			return &ports.AccountDetails{
				Account: &domain.Account{ID: accountID, Name: "Owner", Email: "o@example.com", Role: domain.RoleStoreOwner},
			}, nil
		},
	}
	handler := NewAdminHandler(directory, &stubStatsService{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/user/acc_1", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "admin_1", domain.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("acc_1")

	if err := handler.GetUserDetails(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["average_rating"] != "No ratings yet" {
		t.Fatalf("expected the no-ratings sentinel, got %v", resp["average_rating"])
	}
}

func TestAdminHandler_GetUserDetails_PlainUserOmitsAverage(t *testing.T) {
	e := newEcho()
	directory := &stubDirectoryService{
		getAccountDetailsFn: func(ctx context.Context, accountID string) (*ports.AccountDetails, error) {
			return &ports.AccountDetails{
				Account: &domain.Account{ID: accountID, Name: "Plain", Email: "p@example.com", Role: domain.RoleUser},
			}, nil
		},
	}
	handler := NewAdminHandler(directory, &stubStatsService{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/user/acc_2", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "admin_1", domain.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("acc_2")

	if err := handler.GetUserDetails(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, present := resp["average_rating"]; present {
		t.Fatalf("plain user should omit average_rating: %v", resp)
	}
}

func TestAdminHandler_GetUserDetails_NotFound(t *testing.T) {
	e := newEcho()
	directory := &stubDirectoryService{
		getAccountDetailsFn: func(ctx context.Context, accountID string) (*ports.AccountDetails, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	handler := NewAdminHandler(directory, &stubStatsService{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/user/missing", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "admin_1", domain.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.GetUserDetails(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
