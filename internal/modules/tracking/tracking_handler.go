package tracking

import (
	"context"
	"errors"
	"net/http"

	"munchly-eats/internal/models"

	"github.com/labstack/echo/v4"
)

// OrderReaderInterface enforces ownership before exposing tracking data.
type OrderReaderInterface interface {
	GetOrderDetails(ctx context.Context, orderID, userID string) (*models.Order, error)
}

// Handler serves the live tracking snapshot.
type Handler struct {
	tracker *Tracker
	orders  OrderReaderInterface
}

func NewHandler(tracker *Tracker, orders OrderReaderInterface) *Handler {
	return &Handler{tracker: tracker, orders: orders}
}

func (h *Handler) GetTracking(c echo.Context) error {
	userID := c.Get("userID").(string)
	orderID := c.Param("orderId")

	if _, err := h.orders.GetOrderDetails(c.Request().Context(), orderID, userID); err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Order not found"})
		}
		c.Logger().Error("Handler.GetTracking: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve tracking"})
	}

	snap, err := h.tracker.Snapshot(c.Request().Context(), orderID)
	if err != nil {
		c.Logger().Error("Handler.GetTracking: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve tracking"})
	}
	return c.JSON(http.StatusOK, snap)
}
