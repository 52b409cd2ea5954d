package models

import "time"

// Restaurant is a catalog record; the catalog is a read-only fixture the
// cart and order modules look items up against.
type Restaurant struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	ImageURL       string  `json:"image_url,omitempty"`
	Cuisine        string  `json:"cuisine"`
	Rating         float64 `json:"rating"`
	DeliveryFee    float64 `json:"delivery_fee"`
	MinimumOrder   float64 `json:"minimum_order"`
	DeliveryMins   int     `json:"delivery_mins"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	IsOpen         bool    `json:"is_open"`
}

// MenuItem belongs to exactly one restaurant.
type MenuItem struct {
	ID                  string               `json:"id"`
	RestaurantID        string               `json:"restaurant_id"`
	Name                string               `json:"name"`
	Description         string               `json:"description,omitempty"`
	ImageURL            string               `json:"image_url,omitempty"`
	Price               float64              `json:"price"`
	IsAvailable         bool                 `json:"is_available"`
	CustomizationGroups []CustomizationGroup `json:"customization_groups,omitempty"`
}

// CustomizationGroup is a named set of selectable options on a menu item
// (e.g. "Size", "Toppings").
type CustomizationGroup struct {
	ID      string                `json:"id"`
	Name    string                `json:"name"`
	Options []CustomizationOption `json:"options"`
}

// CustomizationOption is one choice within a group; Price is the surcharge
// added on top of the item's unit price.
type CustomizationOption struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Discount types a promo code can carry.
const (
	DiscountPercentage   = "PERCENTAGE"
	DiscountFixed        = "FIXED"
	DiscountFreeDelivery = "FREE_DELIVERY"
)

// PromoCode is a discount rule from the promo catalog.
type PromoCode struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Description   string    `json:"description,omitempty"`
	DiscountType  string    `json:"discount_type"`
	DiscountValue float64   `json:"discount_value"`
	MinimumOrder  float64   `json:"minimum_order"`
	MaxDiscount   *float64  `json:"max_discount,omitempty"`
	ValidUntil    time.Time `json:"valid_until"`
	UsageLimit    int       `json:"usage_limit"`
	UsedCount     int       `json:"used_count"`
}

// Valid reports whether the code can still be redeemed at the given time,
// independent of any cart.
func (p *PromoCode) Valid(now time.Time) bool {
	return now.Before(p.ValidUntil) && p.UsedCount < p.UsageLimit
}

// Driver is the record returned by the dispatch collaborator when an order
// enters DRIVER_ASSIGNED.
type Driver struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Vehicle string  `json:"vehicle"`
	Rating  float64 `json:"rating"`
}
