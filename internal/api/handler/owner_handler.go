package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// OwnerHandler handles the store-owner dashboard: the caller's store is
// resolved from their identity, never from request input.
type OwnerHandler struct {
	owner ports.OwnerService
}

func NewOwnerHandler(owner ports.OwnerService) *OwnerHandler {
	return &OwnerHandler{owner: owner}
}

type storeRatingEntry struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

// Ratings lists the ratings left on the caller's store with rater names.
//
// @Summary      Ratings for own store
// @Tags         store-owner
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   storeRatingEntry
// @Failure      403  {object}  map[string]string
// @Router       /api/store-owner/ratings [get]
func (h *OwnerHandler) Ratings(c echo.Context) error {
	accountID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	ratings, err := h.owner.StoreRatings(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	out := make([]storeRatingEntry, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, storeRatingEntry{Name: r.UserName, Rating: r.Score})
	}
	return c.JSON(http.StatusOK, out)
}

// AverageRating returns the caller's store average, or "No ratings yet".
//
// @Summary      Average rating of own store
// @Tags         store-owner
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/store-owner/average-rating [get]
func (h *OwnerHandler) AverageRating(c echo.Context) error {
	accountID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	agg, err := h.owner.StoreAverage(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	if agg.Count == 0 {
		return c.JSON(http.StatusOK, map[string]string{"average_rating": "No ratings yet"})
	}
	return c.JSON(http.StatusOK, map[string]string{"average_rating": formatAverage(agg.Average)})
}

// MyStores lists the stores owned by the caller.
//
// @Summary      Own stores
// @Tags         store-owner
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Store
// @Failure      403  {object}  map[string]string
// @Router       /api/store-owner/my-store [get]
func (h *OwnerHandler) MyStores(c echo.Context) error {
	accountID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	stores, err := h.owner.OwnStores(c.Request().Context(), accountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stores)
}
