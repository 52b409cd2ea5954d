package payment

import (
	"context"
	"fmt"
	"math"
	"time"

	"munchly-eats/internal/models"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

// ServiceInterface defines the contract for a payment processing service.
type ServiceInterface interface {
	ProcessPayment(ctx context.Context, userID string, amount float64, paymentMethodID string) (string, error)
}

// StripeService charges via Stripe PaymentIntents.
type StripeService struct {
	api *client.API
}

func NewStripeService(apiKey string) *StripeService {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &StripeService{api: api}
}

// ProcessPayment creates and confirms a PaymentIntent for the given
// amount. Amounts are dollars; Stripe wants cents.
func (s *StripeService) ProcessPayment(ctx context.Context, userID string, amount float64, paymentMethodID string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("invalid payment amount %.2f", amount)
	}

	params := &stripe.PaymentIntentParams{
		Params:        stripe.Params{Context: ctx},
		Amount:        stripe.Int64(int64(math.Round(amount * 100))),
		Currency:      stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethod: stripe.String(paymentMethodID),
		Confirm:       stripe.Bool(true),
	}
	params.AddMetadata("user_id", userID)

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrPaymentFailed, err)
	}
	return pi.ID, nil
}

// MockService simulates a payment for local development. The artificial
// latency is context-cancellable, so abandoning checkout never leaves a
// charge resolving in the background.
type MockService struct {
	Latency time.Duration
}

func NewMockService(latency time.Duration) *MockService {
	return &MockService{Latency: latency}
}

func (s *MockService) ProcessPayment(ctx context.Context, userID string, amount float64, paymentMethodID string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("invalid payment amount %.2f", amount)
	}
	if s.Latency > 0 {
		select {
		case <-time.After(s.Latency):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return fmt.Sprintf("mock_pi_%s_%d", userID, time.Now().UnixNano()), nil
}
