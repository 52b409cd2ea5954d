package models

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("requested resource not found")
var ErrForbidden = errors.New("user does not have permission to access this resource")
var ErrItemNotFound = errors.New("cart item not found")
var ErrInvalidPromoCode = errors.New("promo code not recognized")
var ErrExpiredPromoCode = errors.New("promo code expired or fully redeemed")
var ErrEmptyCart = errors.New("cart is empty")
var ErrOrderNotFound = errors.New("order not found")
var ErrCannotCancel = errors.New("order can no longer be cancelled")
var ErrCannotRate = errors.New("only completed orders can be rated")
var ErrRestaurantNotAvailable = errors.New("restaurant is no longer available")

// ErrPaymentFailed is never produced by the mock payment path; it surfaces
// only from the Stripe-backed implementation.
var ErrPaymentFailed = errors.New("payment could not be processed")

// DifferentRestaurantError rejects an add-to-cart targeting a restaurant
// other than the one the cart already holds items from. It carries the
// current restaurant's name so the client can offer a "start new cart"
// prompt.
type DifferentRestaurantError struct {
	CurrentRestaurant string
}

func (e *DifferentRestaurantError) Error() string {
	return fmt.Sprintf("cart already contains items from %s", e.CurrentRestaurant)
}

// MinimumOrderNotMetError rejects a promo code whose minimum-order
// threshold exceeds the cart subtotal.
type MinimumOrderNotMetError struct {
	Minimum float64
}

func (e *MinimumOrderNotMetError) Error() string {
	return fmt.Sprintf("promo requires a minimum order of %.2f", e.Minimum)
}

// ErrorResponse is the JSON body returned for any handler-level failure.
type ErrorResponse struct {
	Message string `json:"message"`
}
