package catalog

import (
	"time"

	"munchly-eats/internal/models"
)

// Fixtures is the static catalog data the repository is seeded from.
type Fixtures struct {
	Restaurants []models.Restaurant
	MenuItems   []models.MenuItem
	Promos      []models.PromoCode
}

func f64(v float64) *float64 { return &v }

// DefaultFixtures returns the demo catalog.
func DefaultFixtures() Fixtures {
	return Fixtures{
		Restaurants: []models.Restaurant{
			{
				ID: "rest-001", Name: "Golden Dragon", Cuisine: "Chinese",
				Description:  "Cantonese classics and house-made dumplings.",
				Rating:       4.7, DeliveryFee: 2.99, MinimumOrder: 15,
				DeliveryMins: 35, Latitude: 37.7858, Longitude: -122.4064,
				IsOpen:       true,
			},
			{
				ID: "rest-002", Name: "La Piazza", Cuisine: "Italian",
				Description:  "Wood-fired pizza and fresh pasta.",
				Rating:       4.5, DeliveryFee: 3.49, MinimumOrder: 20,
				DeliveryMins: 45, Latitude: 37.7989, Longitude: -122.4076,
				IsOpen:       true,
			},
			{
				ID: "rest-003", Name: "Taco Verde", Cuisine: "Mexican",
				Description:  "Street tacos, burritos, and aguas frescas.",
				Rating:       4.3, DeliveryFee: 1.99, MinimumOrder: 10,
				DeliveryMins: 25, Latitude: 37.7599, Longitude: -122.4148,
				IsOpen:       true,
			},
			{
				ID: "rest-004", Name: "Midnight Ramen", Cuisine: "Japanese",
				Description:  "Tonkotsu and shoyu bowls. Late hours.",
				Rating:       4.8, DeliveryFee: 2.49, MinimumOrder: 18,
				DeliveryMins: 40, Latitude: 37.7702, Longitude: -122.4469,
				IsOpen:       false,
			},
		},
		MenuItems: []models.MenuItem{
			{
				ID: "item-001", RestaurantID: "rest-001", Name: "Kung Pao Chicken",
				Description: "Spicy stir-fry with peanuts.", Price: 12.99, IsAvailable: true,
				CustomizationGroups: []models.CustomizationGroup{
					{
						ID: "grp-001", Name: "Spice Level",
						Options: []models.CustomizationOption{
							{ID: "opt-001", Name: "Mild", Price: 0},
							{ID: "opt-002", Name: "Medium", Price: 0},
							{ID: "opt-003", Name: "Extra Hot", Price: 0.50},
						},
					},
					{
						ID: "grp-002", Name: "Add-ons",
						Options: []models.CustomizationOption{
							{ID: "opt-004", Name: "Extra Chicken", Price: 3.00},
							{ID: "opt-005", Name: "Steamed Rice", Price: 1.50},
						},
					},
				},
			},
			{
				ID: "item-002", RestaurantID: "rest-001", Name: "Pork Dumplings",
				Description: "Eight pan-fried dumplings.", Price: 8.99, IsAvailable: true,
			},
			{
				ID: "item-003", RestaurantID: "rest-002", Name: "Margherita Pizza",
				Description: "San Marzano tomato, fior di latte, basil.", Price: 16.50, IsAvailable: true,
				CustomizationGroups: []models.CustomizationGroup{
					{
						ID: "grp-003", Name: "Size",
						Options: []models.CustomizationOption{
							{ID: "opt-006", Name: `12"`, Price: 0},
							{ID: "opt-007", Name: `16"`, Price: 4.00},
						},
					},
				},
			},
			{
				ID: "item-004", RestaurantID: "rest-002", Name: "Tagliatelle Bolognese",
				Description: "Slow-braised beef ragù.", Price: 18.00, IsAvailable: true,
			},
			{
				ID: "item-005", RestaurantID: "rest-003", Name: "Carnitas Taco",
				Description: "Braised pork, onion, cilantro.", Price: 4.25, IsAvailable: true,
			},
			{
				ID: "item-006", RestaurantID: "rest-003", Name: "Veggie Burrito",
				Description: "Beans, rice, grilled peppers, guacamole.", Price: 10.75, IsAvailable: true,
			},
		},
		Promos: []models.PromoCode{
			{
				ID: "promo-001", Code: "WELCOME10",
				Description:   "10% off your first order",
				DiscountType:  models.DiscountPercentage, DiscountValue: 10,
				MinimumOrder:  20, MaxDiscount: f64(5),
				ValidUntil:    time.Now().AddDate(1, 0, 0), UsageLimit: 1000,
			},
			{
				ID: "promo-002", Code: "SAVE5",
				Description:   "$5 off orders over $30",
				DiscountType:  models.DiscountFixed, DiscountValue: 5,
				MinimumOrder:  30,
				ValidUntil:    time.Now().AddDate(0, 6, 0), UsageLimit: 500,
			},
			{
				ID: "promo-003", Code: "FREEDEL",
				Description:   "Free delivery on orders over $15",
				DiscountType:  models.DiscountFreeDelivery, DiscountValue: 0,
				MinimumOrder:  15,
				ValidUntil:    time.Now().AddDate(0, 3, 0), UsageLimit: 2000,
			},
			{
				ID: "promo-004", Code: "SUMMER24",
				Description:   "Expired seasonal promotion",
				DiscountType:  models.DiscountPercentage, DiscountValue: 15,
				MinimumOrder:  25, MaxDiscount: f64(10),
				ValidUntil:    time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), UsageLimit: 100,
			},
		},
	}
}
