package order

import (
	"errors"
	"net/http"

	"munchly-eats/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for orders.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate
}

// NewHandler creates a new order handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

func (h *Handler) Checkout(c echo.Context) error {
	userID := c.Get("userID").(string)
	email, _ := c.Get("userEmail").(string)

	var req models.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	order, err := h.svc.Checkout(c.Request().Context(), userID, email, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyCart):
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Cart is empty"})
		case errors.Is(err, models.ErrRestaurantNotAvailable):
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Restaurant is no longer available"})
		case errors.Is(err, models.ErrPaymentFailed):
			return c.JSON(http.StatusPaymentRequired, models.ErrorResponse{Message: "Payment could not be processed"})
		}
		c.Logger().Error("Handler.Checkout: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to place order"})
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *Handler) ListMyOrders(c echo.Context) error {
	userID := c.Get("userID").(string)

	var (
		orders []*models.Order
		err    error
	)
	if c.QueryParam("bucket") == "past" {
		orders, err = h.svc.ListPastOrders(c.Request().Context(), userID)
	} else {
		orders, err = h.svc.ListActiveOrders(c.Request().Context(), userID)
	}
	if err != nil {
		c.Logger().Error("Handler.ListMyOrders: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve orders"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"orders": orders, "total": len(orders)})
}

func (h *Handler) GetOrderDetails(c echo.Context) error {
	userID := c.Get("userID").(string)
	orderID := c.Param("orderId")

	order, err := h.svc.GetOrderDetails(c.Request().Context(), orderID, userID)
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Order not found"})
		}
		c.Logger().Error("Handler.GetOrderDetails: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve order details"})
	}

	return c.JSON(http.StatusOK, order)
}

func (h *Handler) CancelOrder(c echo.Context) error {
	userID := c.Get("userID").(string)
	orderID := c.Param("orderId")

	if err := h.svc.CancelOrder(c.Request().Context(), orderID, userID); err != nil {
		switch {
		case errors.Is(err, models.ErrOrderNotFound):
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Order not found"})
		case errors.Is(err, models.ErrCannotCancel):
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Order can no longer be cancelled"})
		}
		c.Logger().Error("Handler.CancelOrder: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to cancel order"})
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) RateOrder(c echo.Context) error {
	userID := c.Get("userID").(string)
	orderID := c.Param("orderId")

	var req models.RateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	order, err := h.svc.RateOrder(c.Request().Context(), orderID, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrOrderNotFound):
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Order not found"})
		case errors.Is(err, models.ErrCannotRate):
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Only completed orders can be rated"})
		}
		c.Logger().Error("Handler.RateOrder: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to rate order"})
	}

	return c.JSON(http.StatusOK, order)
}

func (h *Handler) Reorder(c echo.Context) error {
	userID := c.Get("userID").(string)
	orderID := c.Param("orderId")

	if err := h.svc.Reorder(c.Request().Context(), orderID, userID); err != nil {
		switch {
		case errors.Is(err, models.ErrOrderNotFound):
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Order not found"})
		case errors.Is(err, models.ErrForbidden):
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Only completed orders can be reordered"})
		case errors.Is(err, models.ErrRestaurantNotAvailable):
			return c.JSON(http.StatusGone, models.ErrorResponse{Message: "Restaurant is no longer available"})
		}
		c.Logger().Error("Handler.Reorder: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to reorder"})
	}

	return c.NoContent(http.StatusNoContent)
}
