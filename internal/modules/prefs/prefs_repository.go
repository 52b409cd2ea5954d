package prefs

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
)

// maxRecentSearches bounds the per-user search history.
const maxRecentSearches = 10

// RepositoryInterface defines the persisted client-state operations:
// favorite restaurant/menu-item IDs and a bounded recent-search history.
type RepositoryInterface interface {
	ToggleFavoriteRestaurant(ctx context.Context, userID, restaurantID string) (bool, error)
	ToggleFavoriteItem(ctx context.Context, userID, itemID string) (bool, error)
	FavoriteRestaurants(ctx context.Context, userID string) ([]string, error)
	FavoriteItems(ctx context.Context, userID string) ([]string, error)
	AddRecentSearch(ctx context.Context, userID, query string) error
	RecentSearches(ctx context.Context, userID string) ([]string, error)
}

// Repository stores preferences in Redis: two sets for favorites and a
// list for recent searches, most recent first.
type Repository struct {
	rdb *redis.Client
}

func NewRepository(rdb *redis.Client) *Repository {
	return &Repository{rdb: rdb}
}

func favRestaurantsKey(userID string) string { return "prefs:" + userID + ":fav:restaurants" }
func favItemsKey(userID string) string       { return "prefs:" + userID + ":fav:items" }
func searchesKey(userID string) string       { return "prefs:" + userID + ":searches" }

// toggle flips membership and reports the new state.
func (r *Repository) toggle(ctx context.Context, key, member string) (bool, error) {
	isMember, err := r.rdb.SIsMember(ctx, key, member).Result()
	if err != nil {
		return false, fmt.Errorf("prefs: membership check: %w", err)
	}
	if isMember {
		if err := r.rdb.SRem(ctx, key, member).Err(); err != nil {
			return false, fmt.Errorf("prefs: remove favorite: %w", err)
		}
		return false, nil
	}
	if err := r.rdb.SAdd(ctx, key, member).Err(); err != nil {
		return false, fmt.Errorf("prefs: add favorite: %w", err)
	}
	return true, nil
}

func (r *Repository) ToggleFavoriteRestaurant(ctx context.Context, userID, restaurantID string) (bool, error) {
	return r.toggle(ctx, favRestaurantsKey(userID), restaurantID)
}

func (r *Repository) ToggleFavoriteItem(ctx context.Context, userID, itemID string) (bool, error) {
	return r.toggle(ctx, favItemsKey(userID), itemID)
}

func (r *Repository) FavoriteRestaurants(ctx context.Context, userID string) ([]string, error) {
	ids, err := r.rdb.SMembers(ctx, favRestaurantsKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("prefs: list favorite restaurants: %w", err)
	}
	return ids, nil
}

func (r *Repository) FavoriteItems(ctx context.Context, userID string) ([]string, error) {
	ids, err := r.rdb.SMembers(ctx, favItemsKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("prefs: list favorite items: %w", err)
	}
	return ids, nil
}

// AddRecentSearch pushes a query to the front of the history, removing any
// case-insensitive duplicate first and trimming to the bound.
func (r *Repository) AddRecentSearch(ctx context.Context, userID, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	key := searchesKey(userID)

	existing, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("prefs: read search history: %w", err)
	}

	pipe := r.rdb.TxPipeline()
	for _, s := range existing {
		if strings.EqualFold(s, query) {
			pipe.LRem(ctx, key, 1, s)
		}
	}
	pipe.LPush(ctx, key, query)
	pipe.LTrim(ctx, key, 0, maxRecentSearches-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("prefs: record search: %w", err)
	}
	return nil
}

func (r *Repository) RecentSearches(ctx context.Context, userID string) ([]string, error) {
	searches, err := r.rdb.LRange(ctx, searchesKey(userID), 0, maxRecentSearches-1).Result()
	if err != nil {
		return nil, fmt.Errorf("prefs: list searches: %w", err)
	}
	return searches, nil
}
