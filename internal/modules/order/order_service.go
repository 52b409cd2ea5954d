package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"munchly-eats/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CartInterface is the slice of the cart module checkout and reorder use.
type CartInterface interface {
	Snapshot(ctx context.Context, userID string) ([]models.CartLine, *models.PromoCode, models.CartSummary, error)
	Clear(ctx context.Context, userID string) error
	Restock(ctx context.Context, userID string, restaurant *models.Restaurant, items []models.OrderItem) error
}

// CatalogInterface is the slice of the catalog the order module uses.
type CatalogInterface interface {
	GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error)
}

// PaymentServiceInterface defines the contract for a payment processing
// service.
type PaymentServiceInterface interface {
	ProcessPayment(ctx context.Context, userID string, amount float64, paymentMethodID string) (string, error)
}

// TrackerInterface starts and stops the tracking scheduler for an order.
// It is attached after construction because the tracker itself drives this
// service.
type TrackerInterface interface {
	Track(orderID string)
	Stop(orderID string)
}

// ServiceInterface defines the contract for the order service.
type ServiceInterface interface {
	Checkout(ctx context.Context, userID, email string, req models.CheckoutRequest) (*models.Order, error)
	GetOrderDetails(ctx context.Context, orderID, userID string) (*models.Order, error)
	ListActiveOrders(ctx context.Context, userID string) ([]*models.Order, error)
	ListPastOrders(ctx context.Context, userID string) ([]*models.Order, error)
	CancelOrder(ctx context.Context, orderID, userID string) error
	RateOrder(ctx context.Context, orderID, userID string, req models.RateOrderRequest) (*models.Order, error)
	Reorder(ctx context.Context, orderID, userID string) error
}

// Service implements the order lifecycle: checkout, the status machine,
// cancel/rate/reorder, and the driver-field mutations applied on behalf of
// the tracking scheduler.
type Service struct {
	repo    RepositoryInterface
	cart    CartInterface
	catalog CatalogInterface
	payment PaymentServiceInterface
	tracker TrackerInterface
	log     *logrus.Logger
	now     func() time.Time
}

// NewService creates a new order service.
func NewService(repo RepositoryInterface, cart CartInterface, catalog CatalogInterface, payment PaymentServiceInterface, log *logrus.Logger) *Service {
	return &Service{
		repo:    repo,
		cart:    cart,
		catalog: catalog,
		payment: payment,
		log:     log,
		now:     time.Now,
	}
}

// AttachTracker wires the tracking scheduler in after construction; the
// tracker depends on this service, so it cannot be a constructor argument.
func (s *Service) AttachTracker(t TrackerInterface) {
	s.tracker = t
}

// orderNumber derives a short human-readable reference from an order ID.
func orderNumber(id string) string {
	return "ME-" + strings.ToUpper(strings.ReplaceAll(id, "-", ""))[:8]
}

// Checkout snapshots the user's cart into an order, charges the payment
// method, empties the cart, and starts tracking. Orders are created in
// CONFIRMED; PENDING exists only for integrations that defer payment.
func (s *Service) Checkout(ctx context.Context, userID, email string, req models.CheckoutRequest) (*models.Order, error) {
	lines, _, summary, err := s.cart.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	restaurant, err := s.catalog.GetRestaurant(ctx, lines[0].RestaurantID)
	if err != nil {
		if err == models.ErrNotFound {
			return nil, models.ErrRestaurantNotAvailable
		}
		return nil, fmt.Errorf("service.Checkout: restaurant lookup: %w", err)
	}

	if _, err := s.payment.ProcessPayment(ctx, userID, summary.Total+req.TipAmount, req.PaymentMethodID); err != nil {
		return nil, fmt.Errorf("service.Checkout: %w", err)
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItem{
			MenuItemID:          l.MenuItemID,
			Name:                l.Name,
			UnitPrice:           l.UnitPrice,
			Quantity:            l.Quantity,
			SpecialInstructions: l.SpecialInstructions,
			Customizations:      l.Customizations,
		})
	}

	now := s.now()
	eta := now.Add(time.Duration(restaurant.DeliveryMins) * time.Minute)
	o := &models.Order{
		ID:                uuid.NewString(),
		UserID:            userID,
		CustomerEmail:     email,
		RestaurantID:      restaurant.ID,
		RestaurantName:    restaurant.Name,
		Items:             items,
		Status:            models.StatusConfirmed,
		Subtotal:          summary.Subtotal,
		DeliveryFee:       summary.DeliveryFee,
		ServiceFee:        summary.ServiceFee,
		Tax:               summary.Tax,
		Discount:          summary.Discount,
		Total:             summary.Total,
		TipAmount:         req.TipAmount,
		DeliveryAddress:   req.DeliveryAddress,
		DeliveryLatitude:  req.DeliveryLatitude,
		DeliveryLongitude: req.DeliveryLongitude,
		EstimatedDelivery: &eta,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	o.OrderNumber = orderNumber(o.ID)

	if err := s.repo.Insert(ctx, o); err != nil {
		return nil, fmt.Errorf("service.Checkout: %w", err)
	}
	if err := s.cart.Clear(ctx, userID); err != nil {
		// The order exists and is paid for; a stale cart is recoverable.
		s.log.WithField("user_id", userID).Warn("service.Checkout: failed to clear cart: ", err)
	}

	if s.tracker != nil {
		s.tracker.Track(o.ID)
	}

	return o, nil
}

// FindByID returns an order without an ownership check. It exists for the
// tracking scheduler; handlers go through GetOrderDetails.
func (s *Service) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	return s.repo.FindByID(ctx, orderID)
}

// GetOrderDetails retrieves a single order, enforcing ownership. A foreign
// order reads as not-found to avoid leaking its existence.
func (s *Service) GetOrderDetails(ctx context.Context, orderID, userID string) (*models.Order, error) {
	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, models.ErrOrderNotFound
	}
	return o, nil
}

func (s *Service) ListActiveOrders(ctx context.Context, userID string) ([]*models.Order, error) {
	return s.repo.ListActiveByUser(ctx, userID)
}

func (s *Service) ListPastOrders(ctx context.Context, userID string) ([]*models.Order, error) {
	return s.repo.ListPastByUser(ctx, userID)
}

// CancelOrder cancels an order still inside the cancellation window
// (before the kitchen hands it off).
func (s *Service) CancelOrder(ctx context.Context, orderID, userID string) error {
	if _, err := s.GetOrderDetails(ctx, orderID, userID); err != nil {
		return err
	}

	_, err := s.repo.Mutate(ctx, orderID, func(o *models.Order) error {
		if !o.Status.CanCancel() {
			return models.ErrCannotCancel
		}
		o.Status = models.StatusCancelled
		o.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return err
	}

	if s.tracker != nil {
		s.tracker.Stop(orderID)
	}
	return nil
}

// RateOrder records a rating on a completed order. Re-rating overwrites.
func (s *Service) RateOrder(ctx context.Context, orderID, userID string, req models.RateOrderRequest) (*models.Order, error) {
	if _, err := s.GetOrderDetails(ctx, orderID, userID); err != nil {
		return nil, err
	}

	return s.repo.Mutate(ctx, orderID, func(o *models.Order) error {
		if !o.Status.IsTerminal() {
			return models.ErrCannotRate
		}
		rating := req.Rating
		o.Rating = &rating
		if req.Review != "" {
			review := req.Review
			o.Review = &review
		}
		o.UpdatedAt = s.now()
		return nil
	})
}

// Reorder re-populates the user's cart with a past order's items. The
// original order is not mutated.
func (s *Service) Reorder(ctx context.Context, orderID, userID string) error {
	o, err := s.GetOrderDetails(ctx, orderID, userID)
	if err != nil {
		return err
	}
	if !o.Status.IsTerminal() {
		return models.ErrForbidden
	}

	restaurant, err := s.catalog.GetRestaurant(ctx, o.RestaurantID)
	if err != nil {
		if err == models.ErrNotFound {
			return models.ErrRestaurantNotAvailable
		}
		return fmt.Errorf("service.Reorder: %w", err)
	}

	return s.cart.Restock(ctx, userID, restaurant, o.Items)
}

// Advance moves an order one step along the happy path. It is a no-op on
// terminal and branch statuses: advancement never resumes once an order is
// delivered, cancelled, or refunded. Entering DELIVERED stamps the actual
// delivery time.
func (s *Service) Advance(ctx context.Context, orderID string) (models.OrderStatus, error) {
	o, err := s.repo.Mutate(ctx, orderID, func(o *models.Order) error {
		next := o.Status.Next()
		if next == o.Status {
			return nil
		}
		o.Status = next
		now := s.now()
		o.UpdatedAt = now
		if next == models.StatusDelivered {
			o.ActualDelivery = &now
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return o.Status, nil
}

// AssignDriver sets the driver record; applied once, on first entry to
// DRIVER_ASSIGNED.
func (s *Service) AssignDriver(ctx context.Context, orderID string, driver *models.Driver) error {
	_, err := s.repo.Mutate(ctx, orderID, func(o *models.Order) error {
		if o.Driver != nil {
			return nil
		}
		d := *driver
		o.Driver = &d
		o.UpdatedAt = s.now()
		return nil
	})
	return err
}

// SetDriverPosition updates the simulated driver coordinate.
func (s *Service) SetDriverPosition(ctx context.Context, orderID string, lat, lon float64) error {
	_, err := s.repo.Mutate(ctx, orderID, func(o *models.Order) error {
		o.DriverLatitude = &lat
		o.DriverLongitude = &lon
		o.UpdatedAt = s.now()
		return nil
	})
	return err
}
