package catalog

import (
	"context"
	"sort"
	"strings"
	"time"

	"munchly-eats/internal/models"
)

// RepositoryInterface defines the read-only catalog lookups the cart and
// order modules depend on. The production implementation is an in-memory
// fixture store; a database-backed implementation can be substituted
// behind this interface.
type RepositoryInterface interface {
	ListRestaurants(ctx context.Context, openOnly bool) ([]*models.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error)
	ListMenu(ctx context.Context, restaurantID string) ([]*models.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
	FindPromo(ctx context.Context, code string) (*models.PromoCode, error)
}

// Repository serves the static catalog fixtures. An optional artificial
// latency stands in for the network round-trip a real catalog service
// would cost; it is context-cancellable so navigation away never leaves a
// stale lookup running.
type Repository struct {
	restaurants map[string]*models.Restaurant
	menuItems   map[string]*models.MenuItem
	promos      map[string]*models.PromoCode // keyed by upper-cased code
	latency     time.Duration
}

// NewRepository seeds the store. latency may be zero.
func NewRepository(fixtures Fixtures, latency time.Duration) *Repository {
	r := &Repository{
		restaurants: make(map[string]*models.Restaurant),
		menuItems:   make(map[string]*models.MenuItem),
		promos:      make(map[string]*models.PromoCode),
		latency:     latency,
	}
	for i := range fixtures.Restaurants {
		rest := fixtures.Restaurants[i]
		r.restaurants[rest.ID] = &rest
	}
	for i := range fixtures.MenuItems {
		item := fixtures.MenuItems[i]
		r.menuItems[item.ID] = &item
	}
	for i := range fixtures.Promos {
		promo := fixtures.Promos[i]
		r.promos[strings.ToUpper(promo.Code)] = &promo
	}
	return r
}

func (r *Repository) delay(ctx context.Context) error {
	if r.latency <= 0 {
		return nil
	}
	select {
	case <-time.After(r.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Repository) ListRestaurants(ctx context.Context, openOnly bool) ([]*models.Restaurant, error) {
	if err := r.delay(ctx); err != nil {
		return nil, err
	}
	out := make([]*models.Restaurant, 0, len(r.restaurants))
	for _, rest := range r.restaurants {
		if openOnly && !rest.IsOpen {
			continue
		}
		cp := *rest
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Repository) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	if err := r.delay(ctx); err != nil {
		return nil, err
	}
	rest, ok := r.restaurants[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *rest
	return &cp, nil
}

func (r *Repository) ListMenu(ctx context.Context, restaurantID string) ([]*models.MenuItem, error) {
	if err := r.delay(ctx); err != nil {
		return nil, err
	}
	if _, ok := r.restaurants[restaurantID]; !ok {
		return nil, models.ErrNotFound
	}
	out := []*models.MenuItem{}
	for _, item := range r.menuItems {
		if item.RestaurantID == restaurantID {
			cp := *item
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Repository) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	if err := r.delay(ctx); err != nil {
		return nil, err
	}
	item, ok := r.menuItems[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

// FindPromo looks a code up case-insensitively.
func (r *Repository) FindPromo(ctx context.Context, code string) (*models.PromoCode, error) {
	if err := r.delay(ctx); err != nil {
		return nil, err
	}
	promo, ok := r.promos[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *promo
	return &cp, nil
}
