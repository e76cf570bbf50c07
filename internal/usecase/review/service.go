package review

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/dinedex/internal/domain"
	"github.com/kailas-cloud/dinedex/internal/domain/page"
	domreview "github.com/kailas-cloud/dinedex/internal/domain/review"
)

// Service reads and removes reviews of existing restaurants.
type Service struct {
	repo            Repository
	restaurants     RestaurantChecker
	defaultPageSize int
	maxPageSize     int
}

// New creates a review service.
func New(repo Repository, restaurants RestaurantChecker) *Service {
	return &Service{
		repo:            repo,
		restaurants:     restaurants,
		defaultPageSize: 10,
		maxPageSize:     100,
	}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// List returns one page of reviews, newest first.
func (s *Service) List(ctx context.Context, restaurantID string, req page.Request) ([]domreview.Review, error) {
	if err := s.ensureRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	req = req.Normalize(s.defaultPageSize, s.maxPageSize)

	reviews, err := s.repo.List(ctx, restaurantID, req.Offset(), req.Stop())
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// Get returns a review of the given restaurant.
func (s *Service) Get(ctx context.Context, restaurantID, reviewID string) (domreview.Review, error) {
	if err := s.ensureRestaurant(ctx, restaurantID); err != nil {
		return domreview.Review{}, err
	}
	rv, err := s.repo.Get(ctx, reviewID)
	if err != nil {
		return domreview.Review{}, fmt.Errorf("get review: %w", err)
	}
	if rv.RestaurantID() != restaurantID {
		return domreview.Review{}, domain.ErrReviewNotFound
	}
	return rv, nil
}

// Remove deletes a review. Totals and the average are left as they are.
func (s *Service) Remove(ctx context.Context, restaurantID, reviewID string) (domreview.RemoveOutcome, error) {
	if err := s.ensureRestaurant(ctx, restaurantID); err != nil {
		return "", err
	}
	out, err := s.repo.Remove(ctx, restaurantID, reviewID)
	if err != nil {
		return "", fmt.Errorf("remove review: %w", err)
	}
	return out, nil
}

func (s *Service) ensureRestaurant(ctx context.Context, id string) error {
	ok, err := s.restaurants.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check restaurant: %w", err)
	}
	if !ok {
		return domain.ErrRestaurantNotFound
	}
	return nil
}
