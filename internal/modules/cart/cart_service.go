package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"munchly-eats/internal/models"

	"github.com/google/uuid"
)

// CatalogInterface is the slice of the catalog the cart depends on.
type CatalogInterface interface {
	GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error)
	GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
	FindPromo(ctx context.Context, code string) (*models.PromoCode, error)
}

// ServiceInterface defines the cart operations exposed to handlers and to
// the order module (Snapshot/Clear at checkout, Restock on reorder).
type ServiceInterface interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	AddItem(ctx context.Context, userID string, req models.AddItemRequest) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, lineID string) (*models.Cart, error)
	ReplaceCart(ctx context.Context, userID string, req models.AddItemRequest) (*models.Cart, error)
	ApplyPromoCode(ctx context.Context, userID, code string) (*models.PromoCode, error)
	RemovePromoCode(ctx context.Context, userID string) error
	Snapshot(ctx context.Context, userID string) ([]models.CartLine, *models.PromoCode, models.CartSummary, error)
	Clear(ctx context.Context, userID string) error
	Restock(ctx context.Context, userID string, restaurant *models.Restaurant, items []models.OrderItem) error
}

// cartState is one user's cart: the ordered lines plus at most one applied
// promo. All lines share the same restaurant.
type cartState struct {
	lines []models.CartLine
	promo *models.PromoCode
}

// Service owns all carts. Mutation is serialized by the store lock, which
// preserves the single-writer-per-cart guarantee the pricing and
// single-restaurant invariants assume.
type Service struct {
	catalog CatalogInterface
	pricing PricingConfig

	mu    sync.RWMutex
	carts map[string]*cartState

	now func() time.Time
}

// NewService creates a cart service over the given catalog.
func NewService(catalog CatalogInterface, pricing PricingConfig) *Service {
	return &Service{
		catalog: catalog,
		pricing: pricing,
		carts:   make(map[string]*cartState),
		now:     time.Now,
	}
}

// state returns the user's cart, creating it lazily. Caller must hold mu.
func (s *Service) state(userID string) *cartState {
	cs, ok := s.carts[userID]
	if !ok {
		cs = &cartState{}
		s.carts[userID] = cs
	}
	return cs
}

// view builds the response shape. Caller must hold at least a read lock.
func (s *Service) view(cs *cartState) *models.Cart {
	lines := make([]models.CartLine, len(cs.lines))
	copy(lines, cs.lines)
	return &models.Cart{
		Items:   lines,
		Promo:   cs.promo,
		Summary: Summarize(s.pricing, cs.lines, cs.promo),
	}
}

func (s *Service) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cs, ok := s.carts[userID]
	if !ok {
		return &models.Cart{Items: []models.CartLine{}}, nil
	}
	return s.view(cs), nil
}

// resolveLine turns an add request into a CartLine by looking the item and
// restaurant up in the catalog and resolving customization option IDs.
func (s *Service) resolveLine(ctx context.Context, req models.AddItemRequest) (*models.CartLine, *models.Restaurant, error) {
	restaurant, err := s.catalog.GetRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return nil, nil, fmt.Errorf("service.AddItem: restaurant lookup: %w", err)
	}
	item, err := s.catalog.GetMenuItem(ctx, req.MenuItemID)
	if err != nil {
		return nil, nil, fmt.Errorf("service.AddItem: menu item lookup: %w", err)
	}
	if item.RestaurantID != restaurant.ID {
		return nil, nil, models.ErrNotFound
	}

	var customizations []models.Customization
	for _, optID := range req.CustomizationIDs {
		found := false
		for _, grp := range item.CustomizationGroups {
			for _, opt := range grp.Options {
				if opt.ID == optID {
					customizations = append(customizations, models.Customization{
						ID:         opt.ID,
						GroupName:  grp.Name,
						OptionName: opt.Name,
						Price:      opt.Price,
					})
					found = true
				}
			}
		}
		if !found {
			return nil, nil, models.ErrNotFound
		}
	}

	return &models.CartLine{
		ID:                  uuid.NewString(),
		MenuItemID:          item.ID,
		Name:                item.Name,
		ImageURL:            item.ImageURL,
		RestaurantID:        restaurant.ID,
		RestaurantName:      restaurant.Name,
		UnitPrice:           item.Price,
		Quantity:            req.Quantity,
		SpecialInstructions: req.SpecialInstructions,
		Customizations:      customizations,
		AddedAt:             s.now(),
	}, restaurant, nil
}

// sameSelection reports whether two lines are the same menu item with the
// same customization set and instructions, in which case adding merges
// into the existing line instead of appending a duplicate.
func sameSelection(a, b *models.CartLine) bool {
	if a.MenuItemID != b.MenuItemID || a.SpecialInstructions != b.SpecialInstructions {
		return false
	}
	if len(a.Customizations) != len(b.Customizations) {
		return false
	}
	seen := make(map[string]int, len(a.Customizations))
	for _, c := range a.Customizations {
		seen[c.ID]++
	}
	for _, c := range b.Customizations {
		seen[c.ID]--
		if seen[c.ID] < 0 {
			return false
		}
	}
	return true
}

func (s *Service) AddItem(ctx context.Context, userID string, req models.AddItemRequest) (*models.Cart, error) {
	line, _, err := s.resolveLine(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cs := s.state(userID)

	if len(cs.lines) > 0 && cs.lines[0].RestaurantID != line.RestaurantID {
		return nil, &models.DifferentRestaurantError{CurrentRestaurant: cs.lines[0].RestaurantName}
	}

	for i := range cs.lines {
		if sameSelection(&cs.lines[i], line) {
			cs.lines[i].Quantity += line.Quantity
			return s.view(cs), nil
		}
	}
	cs.lines = append(cs.lines, *line)
	return s.view(cs), nil
}

// removeLineLocked drops a line by index and clears the promo when the
// cart becomes empty. All removal paths funnel through here so an empty
// cart can never retain a promo.
func (cs *cartState) removeLineLocked(i int) {
	cs.lines = append(cs.lines[:i], cs.lines[i+1:]...)
	if len(cs.lines) == 0 {
		cs.promo = nil
	}
}

func (s *Service) UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cs := s.state(userID)

	for i := range cs.lines {
		if cs.lines[i].ID == lineID {
			if quantity <= 0 {
				cs.removeLineLocked(i)
			} else {
				cs.lines[i].Quantity = quantity
			}
			return s.view(cs), nil
		}
	}
	return nil, models.ErrItemNotFound
}

func (s *Service) RemoveItem(ctx context.Context, userID, lineID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cs := s.state(userID)

	for i := range cs.lines {
		if cs.lines[i].ID == lineID {
			cs.removeLineLocked(i)
			return s.view(cs), nil
		}
	}
	return nil, models.ErrItemNotFound
}

// ReplaceCart clears the cart and promo, then adds the new item. Used when
// the user confirms switching restaurants after a DifferentRestaurant
// rejection.
func (s *Service) ReplaceCart(ctx context.Context, userID string, req models.AddItemRequest) (*models.Cart, error) {
	line, _, err := s.resolveLine(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cs := s.state(userID)
	cs.lines = []models.CartLine{*line}
	cs.promo = nil
	return s.view(cs), nil
}

func (s *Service) ApplyPromoCode(ctx context.Context, userID, code string) (*models.PromoCode, error) {
	promo, err := s.catalog.FindPromo(ctx, code)
	if err != nil {
		if err == models.ErrNotFound {
			return nil, models.ErrInvalidPromoCode
		}
		return nil, fmt.Errorf("service.ApplyPromoCode: %w", err)
	}
	if !promo.Valid(s.now()) {
		return nil, models.ErrExpiredPromoCode
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cs := s.state(userID)

	if Subtotal(cs.lines) < promo.MinimumOrder {
		return nil, &models.MinimumOrderNotMetError{Minimum: promo.MinimumOrder}
	}
	cs.promo = promo
	return promo, nil
}

func (s *Service) RemovePromoCode(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state(userID).promo = nil
	return nil
}

// Snapshot returns a copy of the cart contents plus the current summary,
// for checkout.
func (s *Service) Snapshot(ctx context.Context, userID string) ([]models.CartLine, *models.PromoCode, models.CartSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cs, ok := s.carts[userID]
	if !ok || len(cs.lines) == 0 {
		return nil, nil, models.CartSummary{}, models.ErrEmptyCart
	}
	lines := make([]models.CartLine, len(cs.lines))
	copy(lines, cs.lines)
	return lines, cs.promo, Summarize(s.pricing, cs.lines, cs.promo), nil
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}

// Restock replaces the cart with lines equivalent to a past order's items,
// priced as they were on that order. The original order is not touched.
func (s *Service) Restock(ctx context.Context, userID string, restaurant *models.Restaurant, items []models.OrderItem) error {
	lines := make([]models.CartLine, 0, len(items))
	for _, it := range items {
		customizations := make([]models.Customization, len(it.Customizations))
		copy(customizations, it.Customizations)
		lines = append(lines, models.CartLine{
			ID:                  uuid.NewString(),
			MenuItemID:          it.MenuItemID,
			Name:                it.Name,
			RestaurantID:        restaurant.ID,
			RestaurantName:      restaurant.Name,
			UnitPrice:           it.UnitPrice,
			Quantity:            it.Quantity,
			SpecialInstructions: it.SpecialInstructions,
			Customizations:      customizations,
			AddedAt:             s.now(),
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cs := s.state(userID)
	cs.lines = lines
	cs.promo = nil
	return nil
}
