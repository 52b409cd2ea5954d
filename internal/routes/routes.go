package routes

import (
	"net/http"

	"munchly-eats/internal/config"
	"munchly-eats/internal/modules/cart"
	"munchly-eats/internal/modules/catalog"
	"munchly-eats/internal/modules/order"
	"munchly-eats/internal/modules/prefs"
	"munchly-eats/internal/modules/tracking"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// AuthClaims is the JWT payload issued out of band; UserID keys every
// per-user store, Email is used for receipts.
type AuthClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Handlers bundles every module handler for registration.
type Handlers struct {
	Catalog  *catalog.Handler
	Cart     *cart.Handler
	Order    *order.Handler
	Tracking *tracking.Handler
	Prefs    *prefs.Handler
}

// Setup registers all routes. Everything under /api requires a bearer
// token; /health does not.
func Setup(e *echo.Echo, cfg *config.Config, h Handlers) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]bool{"alive": true})
	})

	api := e.Group("/api")
	api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(AuthClaims)
		},
	}))
	api.Use(attachUser)

	api.GET("/restaurants", h.Catalog.ListRestaurants)
	api.GET("/restaurants/:restaurantId", h.Catalog.GetRestaurant)
	api.GET("/restaurants/:restaurantId/menu", h.Catalog.ListMenu)

	api.GET("/cart", h.Cart.GetCart)
	api.POST("/cart/items", h.Cart.AddItem)
	api.PATCH("/cart/items/:lineId", h.Cart.UpdateQuantity)
	api.DELETE("/cart/items/:lineId", h.Cart.RemoveItem)
	api.POST("/cart/replace", h.Cart.ReplaceCart)
	api.POST("/cart/promo", h.Cart.ApplyPromoCode)
	api.DELETE("/cart/promo", h.Cart.RemovePromoCode)

	api.POST("/orders", h.Order.Checkout)
	api.GET("/orders", h.Order.ListMyOrders)
	api.GET("/orders/:orderId", h.Order.GetOrderDetails)
	api.POST("/orders/:orderId/cancel", h.Order.CancelOrder)
	api.POST("/orders/:orderId/rating", h.Order.RateOrder)
	api.POST("/orders/:orderId/reorder", h.Order.Reorder)
	api.GET("/orders/:orderId/tracking", h.Tracking.GetTracking)

	api.POST("/prefs/favorites/restaurants/:restaurantId", h.Prefs.ToggleFavoriteRestaurant)
	api.POST("/prefs/favorites/items/:itemId", h.Prefs.ToggleFavoriteItem)
	api.GET("/prefs/favorites", h.Prefs.ListFavorites)
	api.POST("/prefs/searches", h.Prefs.RecordSearch)
	api.GET("/prefs/searches", h.Prefs.ListRecentSearches)
}

// attachUser lifts the verified claims into the context keys handlers read.
func attachUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
		}
		claims, ok := token.Claims.(*AuthClaims)
		if !ok || claims.UserID == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
		}
		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		return next(c)
	}
}
