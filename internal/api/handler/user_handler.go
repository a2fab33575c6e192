package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-ratings-api/internal/api/metrics"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// UserHandler handles the customer-facing operations: browsing stores and
// managing the caller's own ratings.
type UserHandler struct {
	directory ports.DirectoryService
	ratings   ports.RatingService
}

func NewUserHandler(directory ports.DirectoryService, ratings ports.RatingService) *UserHandler {
	return &UserHandler{directory: directory, ratings: ratings}
}

type rateStoreRequest struct {
	StoreID string `json:"store_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required"`
}

type updateRatingRequest struct {
	Rating int `json:"rating" validate:"required"`
}

type storeListingEntry struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	// AverageRating is null until the store receives its first rating.
	AverageRating *string `json:"average_rating"`
	RatingCount   int64   `json:"rating_count"`
}

type userRatingEntry struct {
	RatingID string `json:"rating_id"`
	StoreID  string `json:"store_id"`
	Score    int    `json:"rating"`
}

// ListStores lists stores with each store's average rating.
//
// @Summary      Browse stores
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        name     query  string  false  "Name substring filter"
// @Param        address  query  string  false  "Address substring filter"
// @Success      200      {array}  storeListingEntry
// @Router       /api/user/stores [get]
func (h *UserHandler) ListStores(c echo.Context) error {
	listings, err := h.directory.ListStoresWithRating(c.Request().Context(), ports.StoreFilter{
		Name:    c.QueryParam("name"),
		Address: c.QueryParam("address"),
	})
	if err != nil {
		return err
	}

	out := make([]storeListingEntry, 0, len(listings))
	for _, l := range listings {
		entry := storeListingEntry{
			ID:          l.Store.ID,
			Name:        l.Store.Name,
			Email:       l.Store.Email,
			Address:     l.Store.Address,
			RatingCount: l.RatingCount,
		}
		if l.AverageRating != nil {
			avg := formatAverage(*l.AverageRating)
			entry.AverageRating = &avg
		}
		out = append(out, entry)
	}
	return c.JSON(http.StatusOK, out)
}

// RateStore submits or replaces the caller's rating for a store.
//
// @Summary      Rate a store
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      rateStoreRequest  true  "Store and score"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/user/rate [post]
func (h *UserHandler) RateStore(c echo.Context) error {
	accountID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req rateStoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.ratings.SubmitOrUpdate(c.Request().Context(), accountID, req.StoreID, req.Rating)
	if err != nil {
		return err
	}

	if result.Created {
		metrics.RatingsSubmittedTotal.WithLabelValues("created").Inc()
		return c.JSON(http.StatusOK, map[string]string{"message": "Rating submitted successfully"})
	}
	metrics.RatingsSubmittedTotal.WithLabelValues("updated").Inc()
	return c.JSON(http.StatusOK, map[string]string{"message": "Rating updated successfully"})
}

// UpdateRating changes the score of one of the caller's ratings.
//
// @Summary      Update own rating
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Rating ID"
// @Param        body  body      updateRatingRequest  true  "New score"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/user/rate/{id} [put]
func (h *UserHandler) UpdateRating(c echo.Context) error {
	accountID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.ratings.Update(c.Request().Context(), c.Param("id"), accountID, req.Rating); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Rating updated successfully"})
}

// DeleteRating removes one of the caller's ratings.
//
// @Summary      Delete own rating
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Rating ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/user/rate/{id} [delete]
func (h *UserHandler) DeleteRating(c echo.Context) error {
	accountID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.ratings.Delete(c.Request().Context(), c.Param("id"), accountID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Rating deleted successfully"})
}

// MyRatings lists the caller's own ratings.
//
// @Summary      List own ratings
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  userRatingEntry
// @Router       /api/user/ratings [get]
func (h *UserHandler) MyRatings(c echo.Context) error {
	accountID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	ratings, err := h.ratings.ListForUser(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	out := make([]userRatingEntry, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, userRatingEntry{RatingID: r.RatingID, StoreID: r.StoreID, Score: r.Score})
	}
	return c.JSON(http.StatusOK, out)
}
