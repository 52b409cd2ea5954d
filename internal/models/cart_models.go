package models

import "time"

// Customization is a resolved option choice attached to a cart line.
type Customization struct {
	ID         string  `json:"id"`
	GroupName  string  `json:"group_name"`
	OptionName string  `json:"option_name"`
	Price      float64 `json:"price"`
}

// CartLine is one entry in a cart: a menu item, a quantity, and the chosen
// customizations. All lines in a cart share the same RestaurantID.
type CartLine struct {
	ID                  string          `json:"id"`
	MenuItemID          string          `json:"menu_item_id"`
	Name                string          `json:"name"`
	ImageURL            string          `json:"image_url,omitempty"`
	RestaurantID        string          `json:"restaurant_id"`
	RestaurantName      string          `json:"restaurant_name"`
	UnitPrice           float64         `json:"unit_price"`
	Quantity            int             `json:"quantity"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
	Customizations      []Customization `json:"customizations,omitempty"`
	AddedAt             time.Time       `json:"added_at"`
}

// TotalPrice is (unit price + customization surcharges) * quantity.
func (l *CartLine) TotalPrice() float64 {
	unit := l.UnitPrice
	for _, c := range l.Customizations {
		unit += c.Price
	}
	return unit * float64(l.Quantity)
}

// CartSummary is the derived pricing breakdown for a cart. It is never
// stored; it is recomputed on every read.
type CartSummary struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	ServiceFee  float64 `json:"service_fee"`
	Tax         float64 `json:"tax"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
}

// Cart is the response shape for cart reads.
type Cart struct {
	Items   []CartLine  `json:"items"`
	Promo   *PromoCode  `json:"promo,omitempty"`
	Summary CartSummary `json:"summary"`
}

// AddItemRequest adds (or merges) a line into the user's cart.
type AddItemRequest struct {
	MenuItemID          string   `json:"menu_item_id" validate:"required"`
	RestaurantID        string   `json:"restaurant_id" validate:"required"`
	Quantity            int      `json:"quantity" validate:"required,min=1"`
	SpecialInstructions string   `json:"special_instructions,omitempty"`
	CustomizationIDs    []string `json:"customization_ids,omitempty"`
}

// UpdateQuantityRequest sets a line's quantity; zero removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

// ApplyPromoRequest applies a promo code to the cart.
type ApplyPromoRequest struct {
	Code string `json:"code" validate:"required"`
}
