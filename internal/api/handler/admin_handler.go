package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-ratings-api/internal/api/metrics"
	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// AdminHandler handles the admin dashboard operations: provisioning,
// store creation, listings, and platform stats.
type AdminHandler struct {
	directory ports.DirectoryService
	stats     ports.StatsService
}

func NewAdminHandler(directory ports.DirectoryService, stats ports.StatsService) *AdminHandler {
	return &AdminHandler{directory: directory, stats: stats}
}

type addStoreRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required,max=400"`
	OwnerID string `json:"owner_id" validate:"required"`
}

type accountResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
	Role    string `json:"role"`
}

type accountDetailsResponse struct {
	accountResponse
	// AverageRating is a two-decimal number for rated store owners and the
	// string "No ratings yet" for owners without ratings; absent otherwise.
	AverageRating any `json:"average_rating,omitempty"`
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:      a.ID,
		Name:    a.Name,
		Email:   a.Email,
		Address: a.Address,
		Role:    a.Role,
	}
}

// AddUser provisions an account with any role.
//
// @Summary      Add a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/admin/add-user [post]
func (h *AdminHandler) AddUser(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.directory.AddUser(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	metrics.AccountsCreatedTotal.WithLabelValues(account.Role).Inc()

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "User added successfully",
		"user":    toAccountResponse(account),
	})
}

// AddStore creates a store owned by an existing store owner.
//
// @Summary      Add a store
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addStoreRequest  true  "Store details"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/admin/add-store [post]
func (h *AdminHandler) AddStore(c echo.Context) error {
	var req addStoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	store, err := h.directory.AddStore(c.Request().Context(), ports.AddStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return err
	}

	metrics.StoresCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Store added successfully",
		"store":   store,
	})
}

// Stats returns the platform-wide entity counts.
//
// @Summary      Platform statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Stats
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.stats.GetStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// ListUsers lists accounts, optionally filtered by role.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role  query     string  false  "Role filter (admin, user, store_owner)"
// @Success      200   {array}   accountResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	accounts, err := h.directory.ListAccounts(c.Request().Context(), c.QueryParam("role"))
	if err != nil {
		return err
	}

	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	return c.JSON(http.StatusOK, out)
}

// ListStores lists stores with optional name/address substring filters.
//
// @Summary      List stores
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        name     query  string  false  "Name substring filter"
// @Param        address  query  string  false  "Address substring filter"
// @Success      200      {array}  domain.Store
// @Router       /api/admin/stores [get]
func (h *AdminHandler) ListStores(c echo.Context) error {
	stores, err := h.directory.ListStores(c.Request().Context(), ports.StoreFilter{
		Name:    c.QueryParam("name"),
		Address: c.QueryParam("address"),
	})
	if err != nil {
		return err
	}
	if stores == nil {
		stores = []*domain.Store{}
	}
	return c.JSON(http.StatusOK, stores)
}

// GetUserDetails returns one account, augmented with the owned store's
// average rating for store owners.
//
// @Summary      Get user details
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  accountDetailsResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/user/{id} [get]
func (h *AdminHandler) GetUserDetails(c echo.Context) error {
	details, err := h.directory.GetAccountDetails(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	resp := accountDetailsResponse{accountResponse: toAccountResponse(details.Account)}
	if details.Account.Role == domain.RoleStoreOwner {
		if details.AverageRating != nil {
			resp.AverageRating = formatAverage(*details.AverageRating)
		} else {
			resp.AverageRating = "No ratings yet"
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// formatAverage renders an average score with exactly two decimal places.
func formatAverage(avg float64) string {
	return strconv.FormatFloat(avg, 'f', 2, 64)
}
