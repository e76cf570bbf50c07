package dinedex

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/dinedex/internal/domain/page"
)

// ReviewService manages the reviews of one restaurant.
type ReviewService struct {
	restaurantID string
	ratings      ratingUseCase
	reviews      reviewUseCase
	obs          *observer
}

// Add records a review (rating 1..5) and returns the updated average.
func (s *ReviewService) Add(ctx context.Context, rating float64, text string) (_ RecordedReview, err error) {
	start := time.Now()
	defer func() { s.obs.observe("review.add", start, err) }()

	res, err := s.ratings.RecordReview(ctx, s.restaurantID, rating, text)
	out := RecordedReview{
		Review:        fromInternalReview(res.Review),
		ReviewCount:   res.Count,
		AverageRating: res.AverageRating,
	}
	if err != nil {
		if res.Review.ID() != "" {
			return out, fmt.Errorf("add review: %w", err)
		}
		return RecordedReview{}, fmt.Errorf("add review: %w", err)
	}
	return out, nil
}

// List returns one page (1-based) of reviews, newest first.
func (s *ReviewService) List(ctx context.Context, pageNumber, limit int) (_ []Review, err error) {
	start := time.Now()
	defer func() { s.obs.observe("review.list", start, err) }()

	rvs, err := s.reviews.List(ctx, s.restaurantID, page.Request{Number: pageNumber, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return fromInternalReviews(rvs), nil
}

// Get returns one review of this restaurant.
func (s *ReviewService) Get(ctx context.Context, reviewID string) (_ Review, err error) {
	start := time.Now()
	defer func() { s.obs.observe("review.get", start, err) }()

	rv, err := s.reviews.Get(ctx, s.restaurantID, reviewID)
	if err != nil {
		return Review{}, fmt.Errorf("get review: %w", err)
	}
	return fromInternalReview(rv), nil
}

// Remove deletes a review. The restaurant's totals and average are not recomputed.
func (s *ReviewService) Remove(ctx context.Context, reviewID string) (_ RemoveOutcome, err error) {
	start := time.Now()
	defer func() { s.obs.observe("review.remove", start, err) }()

	out, err := s.reviews.Remove(ctx, s.restaurantID, reviewID)
	if err != nil {
		return "", fmt.Errorf("remove review: %w", err)
	}
	return RemoveOutcome(out), nil
}
