package restaurant

import (
	"context"

	domrest "github.com/kailas-cloud/dinedex/internal/domain/restaurant"
)

// Repository defines the storage contract for restaurant records.
type Repository interface {
	Save(ctx context.Context, rest domrest.Restaurant) error
	Get(ctx context.Context, id string) (domrest.Restaurant, error)
	GetMany(ctx context.Context, ids []string) ([]domrest.Restaurant, error)
	Exists(ctx context.Context, id string) (bool, error)
	IncrementViewCount(ctx context.Context, id string) (int64, error)
	SetDetails(ctx context.Context, id string, d domrest.Details) error
	GetDetails(ctx context.Context, id string) (domrest.Details, error)
	SearchByName(ctx context.Context, query string, limit int) ([]domrest.Restaurant, error)
}

// CuisineIndex maintains restaurant/cuisine membership.
type CuisineIndex interface {
	Attach(ctx context.Context, restaurantID, cuisine string) error
	CuisinesOf(ctx context.Context, restaurantID string) ([]string, error)
}

// Ranking keeps restaurants ordered by average rating.
type Ranking interface {
	Register(ctx context.Context, restaurantID string) error
	Top(ctx context.Context, start, stop int64) ([]string, error)
}

// DedupGuard detects restaurants created twice.
type DedupGuard interface {
	Seen(ctx context.Context, fingerprint string) (bool, error)
	Record(ctx context.Context, fingerprint string) error
}

// Cache holds restaurant snapshots. Implementations swallow their own failures.
type Cache interface {
	Get(ctx context.Context, id string) (domrest.Restaurant, bool)
	Put(ctx context.Context, rest domrest.Restaurant)
}
