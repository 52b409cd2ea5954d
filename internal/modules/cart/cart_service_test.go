package cart

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"munchly-eats/internal/models"
)

// fakeCatalog backs the cart service with fixed lookups.
type fakeCatalog struct {
	restaurants map[string]*models.Restaurant
	items       map[string]*models.MenuItem
	promos      map[string]*models.PromoCode
}

func (f *fakeCatalog) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	r, ok := f.restaurants[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeCatalog) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	m, ok := f.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeCatalog) FindPromo(ctx context.Context, code string) (*models.PromoCode, error) {
	p, ok := f.promos[strings.ToUpper(code)]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		restaurants: map[string]*models.Restaurant{
			"r1": {ID: "r1", Name: "Dragon Palace", IsOpen: true},
			"r2": {ID: "r2", Name: "Pasta House", IsOpen: true},
		},
		items: map[string]*models.MenuItem{
			"i1": {
				ID: "i1", RestaurantID: "r1", Name: "Kung Pao Chicken", Price: 12.99, IsAvailable: true,
				CustomizationGroups: []models.CustomizationGroup{
					{ID: "g1", Name: "Spice", Options: []models.CustomizationOption{
						{ID: "o1", Name: "Mild", Price: 0},
						{ID: "o2", Name: "Extra Hot", Price: 0.50},
					}},
				},
			},
			"i2": {ID: "i2", RestaurantID: "r2", Name: "Carbonara", Price: 15.00, IsAvailable: true},
		},
		promos: map[string]*models.PromoCode{
			"FIXED10": {
				ID: "p1", Code: "FIXED10", DiscountType: models.DiscountFixed, DiscountValue: 10,
				MinimumOrder: 30, ValidUntil: time.Now().Add(time.Hour), UsageLimit: 10,
			},
			"PCT10": {
				ID: "p2", Code: "PCT10", DiscountType: models.DiscountPercentage, DiscountValue: 10,
				MinimumOrder: 20, ValidUntil: time.Now().Add(time.Hour), UsageLimit: 10,
			},
			"BYGONE": {
				ID: "p3", Code: "BYGONE", DiscountType: models.DiscountFixed, DiscountValue: 5,
				ValidUntil: time.Now().Add(-time.Hour), UsageLimit: 10,
			},
		},
	}
}

func newTestCartService() *Service {
	return NewService(newFakeCatalog(), DefaultPricingConfig())
}

func addReq(itemID, restaurantID string, qty int) models.AddItemRequest {
	return models.AddItemRequest{MenuItemID: itemID, RestaurantID: restaurantID, Quantity: qty}
}

func TestAddItemMergesSameSelection(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "u1", addReq("i1", "r1", 1)); err != nil {
		t.Fatalf("first AddItem: %v", err)
	}
	c, err := svc.AddItem(ctx, "u1", addReq("i1", "r1", 2))
	if err != nil {
		t.Fatalf("second AddItem: %v", err)
	}
	if len(c.Items) != 1 {
		t.Fatalf("got %d lines; want 1 merged line", len(c.Items))
	}
	if c.Items[0].Quantity != 3 {
		t.Errorf("merged quantity = %d; want 3", c.Items[0].Quantity)
	}
}

func TestAddItemDifferentSelectionAppends(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "u1", addReq("i1", "r1", 1)); err != nil {
		t.Fatal(err)
	}
	req := addReq("i1", "r1", 1)
	req.CustomizationIDs = []string{"o2"}
	c, err := svc.AddItem(ctx, "u1", req)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Items) != 2 {
		t.Errorf("got %d lines; want 2 (different customizations never merge)", len(c.Items))
	}
}

func TestAddItemDifferentRestaurant(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "u1", addReq("i1", "r1", 1)); err != nil {
		t.Fatal(err)
	}

	_, err := svc.AddItem(ctx, "u1", addReq("i2", "r2", 1))
	var diffErr *models.DifferentRestaurantError
	if !errors.As(err, &diffErr) {
		t.Fatalf("err = %v; want DifferentRestaurantError", err)
	}
	if diffErr.CurrentRestaurant != "Dragon Palace" {
		t.Errorf("CurrentRestaurant = %q; want %q", diffErr.CurrentRestaurant, "Dragon Palace")
	}

	// The rejected add must leave the cart untouched.
	c, _ := svc.GetCart(ctx, "u1")
	if len(c.Items) != 1 || c.Items[0].RestaurantID != "r1" {
		t.Errorf("cart changed after rejected add: %+v", c.Items)
	}
}

func TestReplaceCartSwitchesRestaurant(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "u1", addReq("i1", "r1", 2)); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ApplyPromoCode(ctx, "u1", "PCT10"); err != nil {
		t.Fatal(err)
	}

	c, err := svc.ReplaceCart(ctx, "u1", addReq("i2", "r2", 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Items) != 1 || c.Items[0].MenuItemID != "i2" {
		t.Errorf("cart after replace = %+v; want only i2", c.Items)
	}
	if c.Promo != nil {
		t.Error("promo survived ReplaceCart")
	}
}

func TestUpdateQuantityToZeroRemovesLineAndClearsPromo(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	c, err := svc.AddItem(ctx, "u1", addReq("i1", "r1", 2))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ApplyPromoCode(ctx, "u1", "PCT10"); err != nil {
		t.Fatal(err)
	}

	c, err = svc.UpdateQuantity(ctx, "u1", c.Items[0].ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Items) != 0 {
		t.Errorf("got %d lines; want empty cart", len(c.Items))
	}
	if c.Promo != nil {
		t.Error("promo retained on empty cart")
	}
}

func TestUpdateQuantitySets(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	c, _ := svc.AddItem(ctx, "u1", addReq("i1", "r1", 1))
	c, err := svc.UpdateQuantity(ctx, "u1", c.Items[0].ID, 5)
	if err != nil {
		t.Fatal(err)
	}
	if c.Items[0].Quantity != 5 {
		t.Errorf("quantity = %d; want 5", c.Items[0].Quantity)
	}

	if _, err := svc.UpdateQuantity(ctx, "u1", "no-such-line", 1); err != models.ErrItemNotFound {
		t.Errorf("err = %v; want ErrItemNotFound", err)
	}
}

func TestRemoveItemClearsPromoWhenCartEmpties(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	c, _ := svc.AddItem(ctx, "u1", addReq("i1", "r1", 2))
	if _, err := svc.ApplyPromoCode(ctx, "u1", "PCT10"); err != nil {
		t.Fatal(err)
	}
	c, err := svc.RemoveItem(ctx, "u1", c.Items[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if c.Promo != nil {
		t.Error("promo retained after cart emptied")
	}
}

func TestApplyPromoCodeErrors(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	// subtotal 25.98: below FIXED10's 30 minimum
	if _, err := svc.AddItem(ctx, "u1", addReq("i1", "r1", 2)); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ApplyPromoCode(ctx, "u1", "NOPE"); err != models.ErrInvalidPromoCode {
		t.Errorf("unknown code: err = %v; want ErrInvalidPromoCode", err)
	}
	if _, err := svc.ApplyPromoCode(ctx, "u1", "BYGONE"); err != models.ErrExpiredPromoCode {
		t.Errorf("expired code: err = %v; want ErrExpiredPromoCode", err)
	}

	_, err := svc.ApplyPromoCode(ctx, "u1", "FIXED10")
	var minErr *models.MinimumOrderNotMetError
	if !errors.As(err, &minErr) {
		t.Fatalf("below minimum: err = %v; want MinimumOrderNotMetError", err)
	}
	if minErr.Minimum != 30 {
		t.Errorf("Minimum = %.2f; want 30", minErr.Minimum)
	}
}

func TestApplyPromoCodeCaseInsensitiveAndIdempotent(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "u1", addReq("i1", "r1", 2)); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ApplyPromoCode(ctx, "u1", "pct10"); err != nil {
		t.Fatalf("lower-case code rejected: %v", err)
	}
	c1, _ := svc.GetCart(ctx, "u1")

	if _, err := svc.ApplyPromoCode(ctx, "u1", "PCT10"); err != nil {
		t.Fatalf("re-apply rejected: %v", err)
	}
	c2, _ := svc.GetCart(ctx, "u1")

	if c1.Summary != c2.Summary {
		t.Errorf("re-applying the same promo changed the summary: %+v vs %+v", c1.Summary, c2.Summary)
	}
}

func TestRemovePromoCode(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "u1", addReq("i1", "r1", 2)); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ApplyPromoCode(ctx, "u1", "PCT10"); err != nil {
		t.Fatal(err)
	}
	if err := svc.RemovePromoCode(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	c, _ := svc.GetCart(ctx, "u1")
	if c.Promo != nil || c.Summary.Discount != 0 {
		t.Errorf("promo still applied: %+v", c)
	}
}

func TestSnapshotEmptyCart(t *testing.T) {
	svc := newTestCartService()
	if _, _, _, err := svc.Snapshot(context.Background(), "nobody"); err != models.ErrEmptyCart {
		t.Errorf("err = %v; want ErrEmptyCart", err)
	}
}

func TestRestockReplacesCart(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "u1", addReq("i2", "r2", 1)); err != nil {
		t.Fatal(err)
	}

	restaurant := &models.Restaurant{ID: "r1", Name: "Dragon Palace"}
	items := []models.OrderItem{
		{MenuItemID: "i1", Name: "Kung Pao Chicken", UnitPrice: 12.99, Quantity: 2},
	}
	if err := svc.Restock(ctx, "u1", restaurant, items); err != nil {
		t.Fatal(err)
	}

	c, _ := svc.GetCart(ctx, "u1")
	if len(c.Items) != 1 || c.Items[0].MenuItemID != "i1" || c.Items[0].Quantity != 2 {
		t.Errorf("restocked cart = %+v; want the past order's line", c.Items)
	}
	if c.Items[0].RestaurantID != "r1" {
		t.Errorf("restocked line restaurant = %s; want r1", c.Items[0].RestaurantID)
	}
}
