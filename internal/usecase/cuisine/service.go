package cuisine

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/dinedex/internal/domain"
	domrest "github.com/kailas-cloud/dinedex/internal/domain/restaurant"
)

// Service browses restaurants by cuisine.
type Service struct {
	index       Index
	restaurants RestaurantReader
}

// New creates a cuisine service.
func New(index Index, restaurants RestaurantReader) *Service {
	return &Service{index: index, restaurants: restaurants}
}

// List returns the names of all cuisines in use.
func (s *Service) List(ctx context.Context) ([]string, error) {
	names, err := s.index.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cuisines: %w", err)
	}
	return names, nil
}

// Restaurants returns the restaurants serving cuisine. An unknown cuisine yields
// an empty list; members whose record is missing are omitted.
func (s *Service) Restaurants(ctx context.Context, cuisine string) ([]domrest.Restaurant, error) {
	cuisine = strings.TrimSpace(cuisine)
	if cuisine == "" {
		return nil, fmt.Errorf("cuisine is required: %w", domain.ErrInvalidInput)
	}

	ids, err := s.index.Members(ctx, cuisine)
	if err != nil {
		return nil, fmt.Errorf("list cuisine members: %w", err)
	}
	rests, err := s.restaurants.GetMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load cuisine restaurants: %w", err)
	}
	return rests, nil
}
