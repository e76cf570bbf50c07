package rating

import (
	"context"

	domreview "github.com/kailas-cloud/dinedex/internal/domain/review"
)

// Ledger appends reviews and reports the resulting review count.
type Ledger interface {
	Append(ctx context.Context, rv domreview.Review) (int64, error)
}

// Restaurants holds the rating fields of the restaurant record.
type Restaurants interface {
	Exists(ctx context.Context, id string) (bool, error)
	AddStars(ctx context.Context, id string, rating float64) (float64, error)
	SetAverageRating(ctx context.Context, id string, avg float64) error
}

// Ranking stores the average rating as the ranking score.
type Ranking interface {
	SetScore(ctx context.Context, restaurantID string, score float64) error
}
