package prefs

import (
	"net/http"

	"munchly-eats/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for user preferences.
type Handler struct {
	repo     RepositoryInterface
	validate *validator.Validate
}

func NewHandler(repo RepositoryInterface) *Handler {
	return &Handler{
		repo:     repo,
		validate: validator.New(),
	}
}

type recordSearchRequest struct {
	Query string `json:"query" validate:"required"`
}

func (h *Handler) ToggleFavoriteRestaurant(c echo.Context) error {
	userID := c.Get("userID").(string)

	favorited, err := h.repo.ToggleFavoriteRestaurant(c.Request().Context(), userID, c.Param("restaurantId"))
	if err != nil {
		c.Logger().Error("Handler.ToggleFavoriteRestaurant: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update favorites"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"favorited": favorited})
}

func (h *Handler) ToggleFavoriteItem(c echo.Context) error {
	userID := c.Get("userID").(string)

	favorited, err := h.repo.ToggleFavoriteItem(c.Request().Context(), userID, c.Param("itemId"))
	if err != nil {
		c.Logger().Error("Handler.ToggleFavoriteItem: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update favorites"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"favorited": favorited})
}

func (h *Handler) ListFavorites(c echo.Context) error {
	userID := c.Get("userID").(string)
	ctx := c.Request().Context()

	restaurants, err := h.repo.FavoriteRestaurants(ctx, userID)
	if err != nil {
		c.Logger().Error("Handler.ListFavorites: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to list favorites"})
	}
	items, err := h.repo.FavoriteItems(ctx, userID)
	if err != nil {
		c.Logger().Error("Handler.ListFavorites: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to list favorites"})
	}

	return c.JSON(http.StatusOK, map[string][]string{
		"restaurants": restaurants,
		"items":       items,
	})
}

func (h *Handler) RecordSearch(c echo.Context) error {
	userID := c.Get("userID").(string)

	var req recordSearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	if err := h.repo.AddRecentSearch(c.Request().Context(), userID, req.Query); err != nil {
		c.Logger().Error("Handler.RecordSearch: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to record search"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListRecentSearches(c echo.Context) error {
	userID := c.Get("userID").(string)

	searches, err := h.repo.RecentSearches(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Error("Handler.ListRecentSearches: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to list searches"})
	}
	return c.JSON(http.StatusOK, map[string][]string{"searches": searches})
}
