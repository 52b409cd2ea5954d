package tracking

import (
	"context"
	"sync"

	"munchly-eats/internal/models"
)

// DispatchInterface hands out a driver for an order. The static pool below
// stands in for a real dispatch system; the tracker only depends on this
// contract.
type DispatchInterface interface {
	Assign(ctx context.Context, order *models.Order) (*models.Driver, error)
}

// StaticDispatch assigns drivers round-robin from a fixed pool.
type StaticDispatch struct {
	mu   sync.Mutex
	next int
	pool []models.Driver
}

func NewStaticDispatch() *StaticDispatch {
	return &StaticDispatch{
		pool: []models.Driver{
			{ID: "drv-001", Name: "Marcus Lee", Phone: "+1-415-555-0134", Vehicle: "Honda Civic", Rating: 4.9},
			{ID: "drv-002", Name: "Priya Nair", Phone: "+1-415-555-0172", Vehicle: "Toyota Prius", Rating: 4.8},
			{ID: "drv-003", Name: "Diego Santos", Phone: "+1-415-555-0146", Vehicle: "Vespa Scooter", Rating: 4.7},
			{ID: "drv-004", Name: "Hannah Cho", Phone: "+1-415-555-0188", Vehicle: "E-bike", Rating: 5.0},
		},
	}
}

func (d *StaticDispatch) Assign(ctx context.Context, order *models.Order) (*models.Driver, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	driver := d.pool[d.next%len(d.pool)]
	d.next++
	return &driver, nil
}
