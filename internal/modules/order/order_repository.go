package order

import (
	"context"
	"sort"
	"sync"

	"munchly-eats/internal/models"
)

// RepositoryInterface defines the contract for the order repository.
// Mutate applies a read-modify-write under the store lock so the tracking
// scheduler and user actions never interleave on the same order.
type RepositoryInterface interface {
	Insert(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	ListActiveByUser(ctx context.Context, userID string) ([]*models.Order, error)
	ListPastByUser(ctx context.Context, userID string) ([]*models.Order, error)
	Mutate(ctx context.Context, orderID string, fn func(o *models.Order) error) (*models.Order, error)
}

// Repository keeps orders in two buckets: active (in-flight) and past
// (terminal). An order moves from active to past the moment a mutation
// leaves it in a terminal status; it never moves back.
type Repository struct {
	mu     sync.RWMutex
	active map[string]*models.Order
	past   map[string]*models.Order
}

func NewRepository() *Repository {
	return &Repository{
		active: make(map[string]*models.Order),
		past:   make(map[string]*models.Order),
	}
}

func copyOrder(o *models.Order) *models.Order {
	cp := *o
	cp.Items = make([]models.OrderItem, len(o.Items))
	copy(cp.Items, o.Items)
	if o.Driver != nil {
		d := *o.Driver
		cp.Driver = &d
	}
	return &cp
}

func (r *Repository) Insert(ctx context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.Status.IsTerminal() {
		r.past[o.ID] = copyOrder(o)
	} else {
		r.active[o.ID] = copyOrder(o)
	}
	return nil
}

// find returns the live record; caller must hold the lock.
func (r *Repository) find(orderID string) (*models.Order, bool) {
	if o, ok := r.active[orderID]; ok {
		return o, true
	}
	if o, ok := r.past[orderID]; ok {
		return o, true
	}
	return nil, false
}

func (r *Repository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.find(orderID)
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	return copyOrder(o), nil
}

func (r *Repository) listByUser(bucket map[string]*models.Order, userID string) []*models.Order {
	out := []*models.Order{}
	for _, o := range bucket {
		if o.UserID == userID {
			out = append(out, copyOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *Repository) ListActiveByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listByUser(r.active, userID), nil
}

func (r *Repository) ListPastByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listByUser(r.past, userID), nil
}

// Mutate applies fn to the order under the store lock and re-buckets the
// order if fn left it terminal. The returned order is a copy.
func (r *Repository) Mutate(ctx context.Context, orderID string, fn func(o *models.Order) error) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.find(orderID)
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	if err := fn(o); err != nil {
		return nil, err
	}
	if _, inActive := r.active[orderID]; inActive && o.Status.IsTerminal() {
		delete(r.active, orderID)
		r.past[orderID] = o
	}
	return copyOrder(o), nil
}
