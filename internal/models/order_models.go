package models

import "time"

// OrderStatus is the lifecycle state of an order. The nine happy-path
// statuses form a strict progression; CANCELLED and REFUNDED are terminal
// side branches reachable only before pickup.
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	StatusDriverAssigned OrderStatus = "DRIVER_ASSIGNED"
	StatusPickedUp       OrderStatus = "PICKED_UP"
	StatusOnTheWay       OrderStatus = "ON_THE_WAY"
	StatusArriving       OrderStatus = "ARRIVING"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
	StatusRefunded       OrderStatus = "REFUNDED"
)

var statusOrder = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReadyForPickup,
	StatusDriverAssigned,
	StatusPickedUp,
	StatusOnTheWay,
	StatusArriving,
	StatusDelivered,
}

// Next returns the successor status on the happy path. Terminal statuses
// return themselves: advancement never resumes once an order is delivered,
// cancelled, or refunded.
func (s OrderStatus) Next() OrderStatus {
	for i, st := range statusOrder {
		if st == s && i < len(statusOrder)-1 {
			return statusOrder[i+1]
		}
	}
	return s
}

// Rank returns the position of s on the happy path, or -1 for the
// cancelled/refunded branches. Used for "has reached status X" checks.
func (s OrderStatus) Rank() int {
	for i, st := range statusOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// IsTerminal reports whether no further transition can occur.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusRefunded
}

// IsActive reports whether the order is still in flight.
func (s OrderStatus) IsActive() bool {
	return !s.IsTerminal()
}

// CanCancel reports whether the user may still cancel: only before the
// kitchen hands the order off.
func (s OrderStatus) CanCancel() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusPreparing
}

// OrderItem is an immutable snapshot of a cart line taken at checkout.
type OrderItem struct {
	MenuItemID          string          `json:"menu_item_id"`
	Name                string          `json:"name"`
	UnitPrice           float64         `json:"unit_price"`
	Quantity            int             `json:"quantity"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
	Customizations      []Customization `json:"customizations,omitempty"`
}

// Order is a placed order. Status and driver fields are mutated only by
// the order service (driven by the tracking scheduler); rating fields only
// by the user once the order is terminal.
type Order struct {
	ID                string      `json:"id"`
	OrderNumber       string      `json:"order_number"`
	UserID            string      `json:"user_id"`
	CustomerEmail     string      `json:"-"`
	RestaurantID      string      `json:"restaurant_id"`
	RestaurantName    string      `json:"restaurant_name"`
	Items             []OrderItem `json:"items"`
	Status            OrderStatus `json:"status"`
	Subtotal          float64     `json:"subtotal"`
	DeliveryFee       float64     `json:"delivery_fee"`
	ServiceFee        float64     `json:"service_fee"`
	Tax               float64     `json:"tax"`
	Discount          float64     `json:"discount"`
	Total             float64     `json:"total"`
	TipAmount         float64     `json:"tip_amount"`
	DeliveryAddress   string      `json:"delivery_address"`
	DeliveryLatitude  float64     `json:"delivery_latitude"`
	DeliveryLongitude float64     `json:"delivery_longitude"`
	Driver            *Driver     `json:"driver,omitempty"`
	DriverLatitude    *float64    `json:"driver_latitude,omitempty"`
	DriverLongitude   *float64    `json:"driver_longitude,omitempty"`
	EstimatedDelivery *time.Time  `json:"estimated_delivery,omitempty"`
	ActualDelivery    *time.Time  `json:"actual_delivery,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
	Rating            *int        `json:"rating,omitempty"`
	Review            *string     `json:"review,omitempty"`
}

// CheckoutRequest turns the user's cart into an order.
type CheckoutRequest struct {
	DeliveryAddress   string  `json:"delivery_address" validate:"required"`
	DeliveryLatitude  float64 `json:"delivery_latitude" validate:"required"`
	DeliveryLongitude float64 `json:"delivery_longitude" validate:"required"`
	TipAmount         float64 `json:"tip_amount" validate:"min=0"`
	PaymentMethodID   string  `json:"payment_method_id" validate:"required"`
}

// RateOrderRequest submits a rating for a completed order. Re-rating
// overwrites the previous rating.
type RateOrderRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review,omitempty"`
}
