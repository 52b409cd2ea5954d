package cart

import (
	"math"
	"testing"
	"time"

	"munchly-eats/internal/models"
)

func line(unitPrice float64, qty int, custPrices ...float64) models.CartLine {
	l := models.CartLine{
		ID:         "line-1",
		MenuItemID: "item-1",
		UnitPrice:  unitPrice,
		Quantity:   qty,
	}
	for i, p := range custPrices {
		l.Customizations = append(l.Customizations, models.Customization{
			ID:    "opt-" + string(rune('a'+i)),
			Price: p,
		})
	}
	return l
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummarizeEmptyCart(t *testing.T) {
	s := Summarize(DefaultPricingConfig(), nil, nil)
	if s != (models.CartSummary{}) {
		t.Errorf("empty cart summary = %+v; want all zeros", s)
	}
}

// One line at 12.99 x2: subtotal 25.98, delivery 2.99, service 1.30,
// tax 2.27, total 32.54.
func TestSummarizeNoPromo(t *testing.T) {
	s := Summarize(DefaultPricingConfig(), []models.CartLine{line(12.99, 2)}, nil)

	if !almostEqual(s.Subtotal, 25.98) {
		t.Errorf("Subtotal = %.2f; want 25.98", s.Subtotal)
	}
	if !almostEqual(s.DeliveryFee, 2.99) {
		t.Errorf("DeliveryFee = %.2f; want 2.99", s.DeliveryFee)
	}
	if !almostEqual(s.ServiceFee, 1.30) {
		t.Errorf("ServiceFee = %.2f; want 1.30", s.ServiceFee)
	}
	if !almostEqual(s.Tax, 2.27) {
		t.Errorf("Tax = %.2f; want 2.27", s.Tax)
	}
	if !almostEqual(s.Total, 32.54) {
		t.Errorf("Total = %.2f; want 32.54", s.Total)
	}
}

func TestSummarizeCustomizationsEnterSubtotal(t *testing.T) {
	// (10.00 + 1.50 + 0.50) * 3 = 36.00
	s := Summarize(DefaultPricingConfig(), []models.CartLine{line(10.00, 3, 1.50, 0.50)}, nil)
	if !almostEqual(s.Subtotal, 36.00) {
		t.Errorf("Subtotal = %.2f; want 36.00", s.Subtotal)
	}
}

func f64(v float64) *float64 { return &v }

func promo(discountType string, value, minOrder float64, maxDiscount *float64) *models.PromoCode {
	return &models.PromoCode{
		ID:            "promo-1",
		Code:          "TEST",
		DiscountType:  discountType,
		DiscountValue: value,
		MinimumOrder:  minOrder,
		MaxDiscount:   maxDiscount,
		ValidUntil:    time.Now().Add(24 * time.Hour),
		UsageLimit:    100,
	}
}

func TestSummarizeDiscounts(t *testing.T) {
	cfg := DefaultPricingConfig()
	lines := []models.CartLine{line(50.00, 2)} // subtotal 100

	tests := []struct {
		name         string
		promo        *models.PromoCode
		wantDiscount float64
		wantDelivery float64
	}{
		{"percentage uncapped", promo(models.DiscountPercentage, 10, 0, nil), 10.00, 2.99},
		{"percentage capped", promo(models.DiscountPercentage, 10, 0, f64(5)), 5.00, 2.99},
		{"fixed", promo(models.DiscountFixed, 7.50, 0, nil), 7.50, 2.99},
		{"free delivery waives fee, no discount", promo(models.DiscountFreeDelivery, 0, 0, nil), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(cfg, lines, tt.promo)
			if !almostEqual(s.Discount, tt.wantDiscount) {
				t.Errorf("Discount = %.2f; want %.2f", s.Discount, tt.wantDiscount)
			}
			if !almostEqual(s.DeliveryFee, tt.wantDelivery) {
				t.Errorf("DeliveryFee = %.2f; want %.2f", s.DeliveryFee, tt.wantDelivery)
			}
		})
	}
}

// The breakdown must always add up: total = subtotal + fees + tax - discount.
func TestSummarizeIdentity(t *testing.T) {
	cfg := DefaultPricingConfig()
	carts := [][]models.CartLine{
		{line(12.99, 2)},
		{line(4.25, 3), line(10.75, 1)},
		{line(16.50, 1, 4.00), line(8.99, 2)},
		{line(0.99, 7)},
	}
	promos := []*models.PromoCode{
		nil,
		promo(models.DiscountPercentage, 15, 0, f64(4)),
		promo(models.DiscountFixed, 5, 0, nil),
		promo(models.DiscountFreeDelivery, 0, 0, nil),
	}
	for _, lines := range carts {
		for _, p := range promos {
			s := Summarize(cfg, lines, p)
			sum := round2(s.Subtotal + s.DeliveryFee + s.ServiceFee + s.Tax - s.Discount)
			if !almostEqual(s.Total, sum) {
				t.Errorf("Total = %.4f; breakdown sums to %.4f (promo %v)", s.Total, sum, p)
			}
			if p != nil && p.DiscountType == models.DiscountPercentage && s.Discount > s.Subtotal {
				t.Errorf("percentage discount %.2f exceeds subtotal %.2f", s.Discount, s.Subtotal)
			}
		}
	}
}

func TestSummarizeRatesAreConfigurable(t *testing.T) {
	cfg := PricingConfig{DeliveryFee: 5.00, ServiceRate: 0.10, TaxRate: 0.20}
	s := Summarize(cfg, []models.CartLine{line(10.00, 1)}, nil)
	if !almostEqual(s.DeliveryFee, 5.00) || !almostEqual(s.ServiceFee, 1.00) || !almostEqual(s.Tax, 2.00) {
		t.Errorf("got %+v; want fees from custom config", s)
	}
}
