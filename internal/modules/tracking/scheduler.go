package tracking

import (
	"context"
	"sync"
	"time"

	"munchly-eats/internal/models"
	"munchly-eats/pkg/notify"

	"github.com/sirupsen/logrus"
)

// OrdersInterface is the slice of the order service the tracker drives.
// In a real deployment the tick-driven simulation below would be replaced
// by telemetry ingestion calling these same methods.
type OrdersInterface interface {
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	Advance(ctx context.Context, orderID string) (models.OrderStatus, error)
	AssignDriver(ctx context.Context, orderID string, driver *models.Driver) error
	SetDriverPosition(ctx context.Context, orderID string, lat, lon float64) error
}

// CatalogInterface provides the restaurant coordinate the route starts at.
type CatalogInterface interface {
	GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error)
}

// Config carries the simulation intervals.
type Config struct {
	TickInterval   time.Duration // driver-position update cadence
	StatusInterval time.Duration // status-advance cadence
	Waypoints      int
}

func DefaultConfig() Config {
	return Config{
		TickInterval:   2 * time.Second,
		StatusInterval: 30 * time.Second,
		Waypoints:      DefaultWaypoints,
	}
}

// run is the tracking state for one order. path is generated once when
// tracking starts and never changes; progress only ratchets forward.
type run struct {
	orderID     string
	cancel      context.CancelFunc
	path        []models.Coordinate
	progress    float64
	position    models.Coordinate
	lastAdvance time.Time
	updatedAt   time.Time
	notified    bool
}

// Tracker owns one scheduler goroutine per actively tracked order. It is
// the only writer of route progress; status and driver fields are written
// through the order service so all order mutation stays serialized there.
type Tracker struct {
	cfg      Config
	orders   OrdersInterface
	catalog  CatalogInterface
	dispatch DispatchInterface
	notifier notify.Notifier
	log      *logrus.Logger

	mu   sync.Mutex
	runs map[string]*run

	now func() time.Time
}

func NewTracker(cfg Config, orders OrdersInterface, catalog CatalogInterface, dispatch DispatchInterface, notifier notify.Notifier, log *logrus.Logger) *Tracker {
	if cfg.Waypoints < 2 {
		cfg.Waypoints = DefaultWaypoints
	}
	return &Tracker{
		cfg:      cfg,
		orders:   orders,
		catalog:  catalog,
		dispatch: dispatch,
		notifier: notifier,
		log:      log,
		runs:     make(map[string]*run),
		now:      time.Now,
	}
}

// Track starts (or restarts) tracking an order. Restarting is idempotent:
// any previous run for the same order is cancelled first, so there is
// never more than one scheduler per order.
func (t *Tracker) Track(orderID string) {
	ctx, cancel := context.WithCancel(context.Background())

	t.mu.Lock()
	if prev, ok := t.runs[orderID]; ok {
		prev.cancel()
	}
	r := &run{
		orderID:     orderID,
		cancel:      cancel,
		lastAdvance: t.now(),
	}
	t.runs[orderID] = r
	t.mu.Unlock()

	go t.loop(ctx, r)
}

// Stop cancels tracking for an order, if any.
func (t *Tracker) Stop(orderID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if r, ok := t.runs[orderID]; ok {
		r.cancel()
		delete(t.runs, orderID)
	}
}

func (t *Tracker) remove(r *run) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cur, ok := t.runs[r.orderID]; ok && cur == r {
		r.cancel()
		delete(t.runs, r.orderID)
	}
}

func (t *Tracker) loop(ctx context.Context, r *run) {
	if err := t.prepare(ctx, r); err != nil {
		if ctx.Err() == nil {
			t.log.WithField("order_id", r.orderID).Error("tracking: failed to start: ", err)
		}
		t.remove(r)
		return
	}

	ticker := time.NewTicker(t.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if done := t.step(ctx, r); done {
				t.remove(r)
				return
			}
		}
	}
}

// prepare generates the route from the restaurant to the delivery address.
func (t *Tracker) prepare(ctx context.Context, r *run) error {
	order, err := t.orders.FindByID(ctx, r.orderID)
	if err != nil {
		return err
	}
	restaurant, err := t.catalog.GetRestaurant(ctx, order.RestaurantID)
	if err != nil {
		return err
	}

	path := GeneratePath(
		models.Coordinate{Latitude: restaurant.Latitude, Longitude: restaurant.Longitude},
		models.Coordinate{Latitude: order.DeliveryLatitude, Longitude: order.DeliveryLongitude},
		t.cfg.Waypoints,
	)

	t.mu.Lock()
	r.path = path
	r.position = path[0]
	r.updatedAt = t.now()
	t.mu.Unlock()

	t.log.WithFields(logrus.Fields{
		"order_id":  r.orderID,
		"waypoints": len(path),
	}).Info("tracking started")
	return nil
}

// step performs one simulation tick: advance the status when the coarser
// interval has elapsed, apply transition side effects, ratchet progress,
// and push the interpolated driver position. Returns true when the order
// has reached a terminal status and the run should stop.
func (t *Tracker) step(ctx context.Context, r *run) bool {
	order, err := t.orders.FindByID(ctx, r.orderID)
	if err != nil {
		t.log.WithField("order_id", r.orderID).Error("tracking: lookup failed: ", err)
		return true
	}

	if !order.Status.IsActive() {
		t.finish(ctx, r, order)
		return true
	}

	if t.now().Sub(r.lastAdvance) >= t.cfg.StatusInterval {
		status, err := t.orders.Advance(ctx, r.orderID)
		if err != nil {
			t.log.WithField("order_id", r.orderID).Error("tracking: advance failed: ", err)
			return true
		}
		r.lastAdvance = t.now()
		order.Status = status
		t.log.WithFields(logrus.Fields{
			"order_id": r.orderID,
			"status":   status,
		}).Debug("order status advanced")
	}

	// First entry at or past DRIVER_ASSIGNED gets a driver.
	if order.Driver == nil && order.Status.Rank() >= models.StatusDriverAssigned.Rank() {
		driver, err := t.dispatch.Assign(ctx, order)
		if err != nil {
			t.log.WithField("order_id", r.orderID).Error("tracking: dispatch failed: ", err)
		} else if err := t.orders.AssignDriver(ctx, r.orderID, driver); err != nil {
			t.log.WithField("order_id", r.orderID).Error("tracking: driver assignment failed: ", err)
		} else {
			t.log.WithFields(logrus.Fields{
				"order_id": r.orderID,
				"driver":   driver.Name,
			}).Info("driver assigned")
		}
	}

	t.mu.Lock()
	r.progress = progressTarget(order.Status, r.progress)
	r.position = PositionAt(r.path, r.progress)
	r.updatedAt = t.now()
	pos := r.position
	t.mu.Unlock()

	if err := t.orders.SetDriverPosition(ctx, r.orderID, pos.Latitude, pos.Longitude); err != nil {
		t.log.WithField("order_id", r.orderID).Error("tracking: position update failed: ", err)
	}

	if order.Status == models.StatusDelivered {
		t.finish(ctx, r, order)
		return true
	}
	return false
}

// finish fires the delivered notification once and lets the run wind down.
func (t *Tracker) finish(ctx context.Context, r *run, order *models.Order) {
	t.mu.Lock()
	if order.Status == models.StatusDelivered {
		r.progress = 1.0
		if len(r.path) > 0 {
			r.position = r.path[len(r.path)-1]
		}
		r.updatedAt = t.now()
	}
	alreadyNotified := r.notified
	r.notified = true
	t.mu.Unlock()

	if order.Status == models.StatusDelivered && !alreadyNotified && t.notifier != nil {
		if err := t.notifier.SendOrderReceipt(ctx, order); err != nil {
			t.log.WithField("order_id", r.orderID).Warn("tracking: receipt notification failed: ", err)
		}
	}

	t.log.WithFields(logrus.Fields{
		"order_id": r.orderID,
		"status":   order.Status,
	}).Info("tracking stopped")
}

// Snapshot returns the live tracking view for an order. Terminal or
// untracked orders still get a coherent snapshot derived from the order
// record.
func (t *Tracker) Snapshot(ctx context.Context, orderID string) (*models.TrackingSnapshot, error) {
	order, err := t.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	snap := &models.TrackingSnapshot{
		OrderID:           order.ID,
		Status:            order.Status,
		Driver:            order.Driver,
		EstimatedDelivery: order.EstimatedDelivery,
		UpdatedAt:         order.UpdatedAt,
	}
	if order.Status == models.StatusDelivered {
		snap.Progress = 1.0
	}
	if order.DriverLatitude != nil && order.DriverLongitude != nil {
		snap.DriverPosition = &models.Coordinate{
			Latitude:  *order.DriverLatitude,
			Longitude: *order.DriverLongitude,
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if r, ok := t.runs[orderID]; ok && len(r.path) > 0 {
		snap.Progress = r.progress
		snap.Traveled = PrefixAt(r.path, r.progress)
		pos := r.position
		snap.DriverPosition = &pos
		snap.UpdatedAt = r.updatedAt
	}
	return snap, nil
}
