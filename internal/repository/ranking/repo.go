// Package ranking keeps the global sorted set of restaurants by average rating.
package ranking

import (
	"context"
	"errors"

	"github.com/kailas-cloud/dinedex/internal/db"
	"github.com/kailas-cloud/dinedex/internal/domain"
	"github.com/kailas-cloud/dinedex/internal/keyspace"
)

// store is the consumer interface for the rating ranking (ISP).
type store interface {
	ZAdd(ctx context.Context, key string, score float64, member string) error
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	ZScore(ctx context.Context, key, member string) (float64, error)
}

// Repo implements the rating ranking.
type Repo struct {
	store store
	keys  keyspace.Namespace
}

// New creates a ranking repository.
func New(s store, keys keyspace.Namespace) *Repo {
	return &Repo{store: s, keys: keys}
}

// Register enters a new restaurant with score 0.
func (r *Repo) Register(ctx context.Context, restaurantID string) error {
	return r.SetScore(ctx, restaurantID, 0)
}

// SetScore overwrites the restaurant's ranking score.
func (r *Repo) SetScore(ctx context.Context, restaurantID string, score float64) error {
	if err := r.store.ZAdd(ctx, r.keys.RatingRanking(), score, restaurantID); err != nil {
		return domain.StoreFailure("zadd ranking "+restaurantID, err)
	}
	return nil
}

// Top returns restaurant ids from rank start to stop inclusive, highest score first.
func (r *Repo) Top(ctx context.Context, start, stop int64) ([]string, error) {
	if start < 0 || stop < start {
		return []string{}, nil
	}
	ids, err := r.store.ZRevRange(ctx, r.keys.RatingRanking(), start, stop)
	if err != nil {
		return nil, domain.StoreFailure("zrange ranking", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Score returns the ranking score of a restaurant, ErrRestaurantNotFound when unranked.
func (r *Repo) Score(ctx context.Context, restaurantID string) (float64, error) {
	score, err := r.store.ZScore(ctx, r.keys.RatingRanking(), restaurantID)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, domain.ErrRestaurantNotFound
		}
		return 0, domain.StoreFailure("zscore ranking "+restaurantID, err)
	}
	return score, nil
}
