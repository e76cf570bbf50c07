package dinedex

import (
	"context"
	"fmt"
	"time"
)

// CuisineService browses restaurants by cuisine.
type CuisineService struct {
	svc cuisineUseCase
	obs *observer
}

// List returns every cuisine in use, sorted.
func (s *CuisineService) List(ctx context.Context) (_ []string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("cuisine.list", start, err) }()

	names, err := s.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cuisines: %w", err)
	}
	return names, nil
}

// Restaurants returns the restaurants serving cuisine; unknown cuisines yield none.
func (s *CuisineService) Restaurants(ctx context.Context, cuisine string) (_ []Restaurant, err error) {
	start := time.Now()
	defer func() { s.obs.observe("cuisine.restaurants", start, err) }()

	rs, err := s.svc.Restaurants(ctx, cuisine)
	if err != nil {
		return nil, fmt.Errorf("cuisine restaurants: %w", err)
	}
	return fromInternalRestaurants(rs), nil
}
