package review

import (
	"context"

	domreview "github.com/kailas-cloud/dinedex/internal/domain/review"
)

// Repository defines the storage contract for the review ledger.
type Repository interface {
	List(ctx context.Context, restaurantID string, start, stop int64) ([]domreview.Review, error)
	Get(ctx context.Context, reviewID string) (domreview.Review, error)
	Remove(ctx context.Context, restaurantID, reviewID string) (domreview.RemoveOutcome, error)
}

// RestaurantChecker reports whether a restaurant exists.
type RestaurantChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}
