package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"munchly-eats/internal/config"
	"munchly-eats/internal/modules/cart"
	"munchly-eats/internal/modules/catalog"
	"munchly-eats/internal/modules/order"
	"munchly-eats/internal/modules/prefs"
	"munchly-eats/internal/modules/tracking"
	"munchly-eats/internal/routes"
	"munchly-eats/pkg/notify"
	"munchly-eats/pkg/payment"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	ctx := context.Background()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, preference endpoints will fail: ", err)
	}

	// Stores and services.
	mockLatency := time.Duration(cfg.MockLatencyMillis) * time.Millisecond
	catalogRepo := catalog.NewRepository(catalog.DefaultFixtures(), mockLatency)

	pricing := cart.PricingConfig{
		DeliveryFee: cfg.DeliveryFee,
		ServiceRate: cfg.ServiceRate,
		TaxRate:     cfg.TaxRate,
	}
	cartSvc := cart.NewService(catalogRepo, pricing)

	var paymentSvc payment.ServiceInterface
	if cfg.StripeAPIKey != "" {
		paymentSvc = payment.NewStripeService(cfg.StripeAPIKey)
	} else {
		log.Info("no Stripe key configured, using mock payments")
		paymentSvc = payment.NewMockService(mockLatency)
	}

	var notifier notify.Notifier
	if cfg.SESSender != "" {
		n, err := notify.NewSESNotifier(ctx, cfg.SESSender)
		if err != nil {
			log.Fatal("failed to initialise SES: ", err)
		}
		notifier = n
	} else {
		notifier = &notify.NoopNotifier{Log: log}
	}

	orderRepo := order.NewRepository()
	orderSvc := order.NewService(orderRepo, cartSvc, catalogRepo, paymentSvc, log)

	tracker := tracking.NewTracker(tracking.Config{
		TickInterval:   time.Duration(cfg.TrackingTickSeconds) * time.Second,
		StatusInterval: time.Duration(cfg.StatusAdvanceSeconds) * time.Second,
		Waypoints:      tracking.DefaultWaypoints,
	}, orderSvc, catalogRepo, tracking.NewStaticDispatch(), notifier, log)
	orderSvc.AttachTracker(tracker)

	prefsRepo := prefs.NewRepository(rdb)

	// HTTP wiring.
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	if cfg.ClientOrigin != "" {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{cfg.ClientOrigin},
		}))
	}

	routes.Setup(e, cfg, routes.Handlers{
		Catalog:  catalog.NewHandler(catalogRepo),
		Cart:     cart.NewHandler(cartSvc),
		Order:    order.NewHandler(orderSvc),
		Tracking: tracking.NewHandler(tracker, orderSvc),
		Prefs:    prefs.NewHandler(prefsRepo),
	})

	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error: ", err)
		}
	}()
	log.Info("listening on :", cfg.ServerPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown: ", err)
	}
	log.Info("server stopped")
}
