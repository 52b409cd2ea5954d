package models

import "time"

// Coordinate is a WGS84 point.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TrackingSnapshot is the live view of an order under tracking: the
// simulated driver position, how far along the route the driver is, and
// the portion of the path travelled so far.
type TrackingSnapshot struct {
	OrderID           string       `json:"order_id"`
	Status            OrderStatus  `json:"status"`
	Progress          float64      `json:"progress"`
	Driver            *Driver      `json:"driver,omitempty"`
	DriverPosition    *Coordinate  `json:"driver_position,omitempty"`
	Traveled          []Coordinate `json:"traveled,omitempty"`
	EstimatedDelivery *time.Time   `json:"estimated_delivery,omitempty"`
	UpdatedAt         time.Time    `json:"updated_at"`
}
