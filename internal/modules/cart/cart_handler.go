package cart

import (
	"errors"
	"net/http"

	"munchly-eats/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for the cart.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate
}

func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

// cartError maps domain errors to responses; the payload-carrying errors
// expose their detail so the client can render the exact prompt.
func cartError(c echo.Context, op string, err error) error {
	var diffRest *models.DifferentRestaurantError
	if errors.As(err, &diffRest) {
		return c.JSON(http.StatusConflict, map[string]interface{}{
			"message":            "Your cart contains items from another restaurant",
			"current_restaurant": diffRest.CurrentRestaurant,
		})
	}
	var minOrder *models.MinimumOrderNotMetError
	if errors.As(err, &minOrder) {
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"message":       "Cart subtotal is below the promo minimum",
			"minimum_order": minOrder.Minimum,
		})
	}
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Item not found"})
	case errors.Is(err, models.ErrItemNotFound):
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Cart item not found"})
	case errors.Is(err, models.ErrInvalidPromoCode):
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Promo code not recognized"})
	case errors.Is(err, models.ErrExpiredPromoCode):
		return c.JSON(http.StatusGone, models.ErrorResponse{Message: "Promo code has expired"})
	}
	c.Logger().Error(op+": ", err)
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Cart operation failed"})
}

func (h *Handler) GetCart(c echo.Context) error {
	userID := c.Get("userID").(string)

	cart, err := h.svc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return cartError(c, "Handler.GetCart", err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *Handler) AddItem(c echo.Context) error {
	userID := c.Get("userID").(string)

	var req models.AddItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	cart, err := h.svc.AddItem(c.Request().Context(), userID, req)
	if err != nil {
		return cartError(c, "Handler.AddItem", err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *Handler) UpdateQuantity(c echo.Context) error {
	userID := c.Get("userID").(string)
	lineID := c.Param("lineId")

	var req models.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	cart, err := h.svc.UpdateQuantity(c.Request().Context(), userID, lineID, req.Quantity)
	if err != nil {
		return cartError(c, "Handler.UpdateQuantity", err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *Handler) RemoveItem(c echo.Context) error {
	userID := c.Get("userID").(string)

	cart, err := h.svc.RemoveItem(c.Request().Context(), userID, c.Param("lineId"))
	if err != nil {
		return cartError(c, "Handler.RemoveItem", err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *Handler) ReplaceCart(c echo.Context) error {
	userID := c.Get("userID").(string)

	var req models.AddItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	cart, err := h.svc.ReplaceCart(c.Request().Context(), userID, req)
	if err != nil {
		return cartError(c, "Handler.ReplaceCart", err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *Handler) ApplyPromoCode(c echo.Context) error {
	userID := c.Get("userID").(string)

	var req models.ApplyPromoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	promo, err := h.svc.ApplyPromoCode(c.Request().Context(), userID, req.Code)
	if err != nil {
		return cartError(c, "Handler.ApplyPromoCode", err)
	}
	return c.JSON(http.StatusOK, promo)
}

func (h *Handler) RemovePromoCode(c echo.Context) error {
	userID := c.Get("userID").(string)

	if err := h.svc.RemovePromoCode(c.Request().Context(), userID); err != nil {
		return cartError(c, "Handler.RemovePromoCode", err)
	}
	return c.NoContent(http.StatusNoContent)
}
