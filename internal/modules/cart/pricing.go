package cart

import (
	"math"

	"munchly-eats/internal/models"
)

// PricingConfig carries the fee schedule. Rates live here rather than as
// literals so they can be overridden from configuration and pinned in
// tests.
type PricingConfig struct {
	DeliveryFee float64 // flat fee, waived by free-delivery promos
	ServiceRate float64 // fraction of subtotal
	TaxRate     float64 // fraction of subtotal
}

// DefaultPricingConfig is the published fee schedule.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		DeliveryFee: 2.99,
		ServiceRate: 0.05,
		TaxRate:     0.0875,
	}
}

// round2 rounds to cents for presentation.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Subtotal sums line totals.
func Subtotal(lines []models.CartLine) float64 {
	var sum float64
	for i := range lines {
		sum += lines[i].TotalPrice()
	}
	return sum
}

// Discount computes the promo discount against a subtotal. Free-delivery
// promos return 0 here; the waived fee is reflected in the delivery fee,
// never double-counted as a discount.
func Discount(subtotal float64, promo *models.PromoCode) float64 {
	if promo == nil {
		return 0
	}
	switch promo.DiscountType {
	case models.DiscountPercentage:
		d := subtotal * promo.DiscountValue / 100
		if promo.MaxDiscount != nil && d > *promo.MaxDiscount {
			d = *promo.MaxDiscount
		}
		return d
	case models.DiscountFixed:
		return promo.DiscountValue
	default:
		return 0
	}
}

// Summarize computes the full pricing breakdown for a cart. The tip is the
// caller's business and never enters this computation.
func Summarize(cfg PricingConfig, lines []models.CartLine, promo *models.PromoCode) models.CartSummary {
	if len(lines) == 0 {
		return models.CartSummary{}
	}

	subtotal := Subtotal(lines)

	deliveryFee := cfg.DeliveryFee
	if promo != nil && promo.DiscountType == models.DiscountFreeDelivery {
		deliveryFee = 0
	}

	serviceFee := subtotal * cfg.ServiceRate
	tax := subtotal * cfg.TaxRate
	discount := Discount(subtotal, promo)

	// Total is computed from the rounded components so the breakdown the
	// client renders always adds up to the total it is charged.
	s := models.CartSummary{
		Subtotal:    round2(subtotal),
		DeliveryFee: round2(deliveryFee),
		ServiceFee:  round2(serviceFee),
		Tax:         round2(tax),
		Discount:    round2(discount),
	}
	s.Total = round2(s.Subtotal + s.DeliveryFee + s.ServiceFee + s.Tax - s.Discount)
	return s
}
