package catalog

import (
	"net/http"

	"munchly-eats/internal/models"

	"github.com/labstack/echo/v4"
)

// Handler serves read-only catalog endpoints.
type Handler struct {
	repo RepositoryInterface
}

func NewHandler(repo RepositoryInterface) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) ListRestaurants(c echo.Context) error {
	openOnly := c.QueryParam("open") == "true"

	restaurants, err := h.repo.ListRestaurants(c.Request().Context(), openOnly)
	if err != nil {
		c.Logger().Error("Handler.ListRestaurants: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to list restaurants"})
	}
	return c.JSON(http.StatusOK, restaurants)
}

func (h *Handler) GetRestaurant(c echo.Context) error {
	restaurant, err := h.repo.GetRestaurant(c.Request().Context(), c.Param("restaurantId"))
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Restaurant not found"})
		}
		c.Logger().Error("Handler.GetRestaurant: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve restaurant"})
	}
	return c.JSON(http.StatusOK, restaurant)
}

func (h *Handler) ListMenu(c echo.Context) error {
	items, err := h.repo.ListMenu(c.Request().Context(), c.Param("restaurantId"))
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Restaurant not found"})
		}
		c.Logger().Error("Handler.ListMenu: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve menu"})
	}
	return c.JSON(http.StatusOK, items)
}
