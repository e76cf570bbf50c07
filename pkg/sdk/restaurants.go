package dinedex

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kailas-cloud/dinedex/internal/domain/page"
)

// RestaurantService manages restaurants.
type RestaurantService struct {
	svc restaurantUseCase
	obs *observer
}

// Create adds a restaurant. A duplicate (name, location) yields ErrAlreadyExists.
// When only derived writes fail the restaurant is returned with an ErrPartialIndex error.
func (s *RestaurantService) Create(
	ctx context.Context, name, location string, cuisines ...string,
) (_ Restaurant, err error) {
	start := time.Now()
	defer func() { s.obs.observe("restaurant.create", start, err) }()

	r, err := s.svc.Create(ctx, name, location, cuisines)
	if err != nil {
		if r.ID() != "" {
			return fromInternalRestaurant(r), fmt.Errorf("create restaurant: %w", err)
		}
		return Restaurant{}, fmt.Errorf("create restaurant: %w", err)
	}
	return fromInternalRestaurant(r), nil
}

// Get returns a restaurant, served from cache when fresh.
func (s *RestaurantService) Get(ctx context.Context, id string) (_ Restaurant, err error) {
	start := time.Now()
	defer func() { s.obs.observe("restaurant.get", start, err) }()

	r, err := s.svc.Get(ctx, id)
	if err != nil {
		return Restaurant{}, fmt.Errorf("get restaurant: %w", err)
	}
	return fromInternalRestaurant(r), nil
}

// Top returns one page (1-based) of restaurants by average rating, best first.
// Zero values pick the defaults.
func (s *RestaurantService) Top(ctx context.Context, pageNumber, limit int) (_ []Restaurant, err error) {
	start := time.Now()
	defer func() { s.obs.observe("restaurant.top", start, err) }()

	rs, err := s.svc.Top(ctx, page.Request{Number: pageNumber, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("top restaurants: %w", err)
	}
	return fromInternalRestaurants(rs), nil
}

// Search matches restaurant names through the search index.
func (s *RestaurantService) Search(ctx context.Context, query string, limit int) (_ []Restaurant, err error) {
	start := time.Now()
	defer func() { s.obs.observe("restaurant.search", start, err) }()

	rs, err := s.svc.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search restaurants: %w", err)
	}
	return fromInternalRestaurants(rs), nil
}

// SetDetails replaces the free-form details document. details must be a JSON object.
func (s *RestaurantService) SetDetails(ctx context.Context, id string, details json.RawMessage) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("restaurant.set_details", start, err) }()

	if _, err = s.svc.SetDetails(ctx, id, details); err != nil {
		return fmt.Errorf("set details: %w", err)
	}
	return nil
}

// GetDetails returns the details document, ErrDetailsNotFound when none was set.
func (s *RestaurantService) GetDetails(ctx context.Context, id string) (_ json.RawMessage, err error) {
	start := time.Now()
	defer func() { s.obs.observe("restaurant.get_details", start, err) }()

	d, err := s.svc.GetDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get details: %w", err)
	}
	return fromInternalDetails(d), nil
}
