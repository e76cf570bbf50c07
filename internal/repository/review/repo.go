// Package review implements the review ledger: a most-recent-first id list per
// restaurant plus one hash per review.
package review

import (
	"context"

	"github.com/kailas-cloud/dinedex/internal/domain"
	domreview "github.com/kailas-cloud/dinedex/internal/domain/review"
	"github.com/kailas-cloud/dinedex/internal/fanout"
	"github.com/kailas-cloud/dinedex/internal/keyspace"
)

// store is the consumer interface for the review ledger (ISP).
type store interface {
	LPush(ctx context.Context, key string, values ...string) (int64, error)
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	LRem(ctx context.Context, key string, count int64, value string) (int64, error)
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) (bool, error)
}

// Repo implements the review ledger.
type Repo struct {
	store store
	keys  keyspace.Namespace
}

// New creates a review repository.
func New(s store, keys keyspace.Namespace) *Repo {
	return &Repo{store: s, keys: keys}
}

// Append pushes the review id onto the restaurant's list and writes the record,
// concurrently. It returns the list length after the push, i.e. the review count.
func (r *Repo) Append(ctx context.Context, rv domreview.Review) (int64, error) {
	var count int64

	var g fanout.Group
	g.Go("ledger", func() error {
		n, err := r.store.LPush(ctx, r.keys.Reviews(rv.RestaurantID()), rv.ID())
		count = n
		return err
	})
	g.Go("record", func() error {
		return r.store.HSet(ctx, r.keys.ReviewDetails(rv.ID()), reviewToHash(rv))
	})

	if err := g.Wait().Err(); err != nil {
		return 0, domain.StoreFailure("append review "+rv.ID(), err)
	}
	return count, nil
}

// List returns reviews from position start to stop inclusive, newest first.
// Ids whose record is gone are skipped.
func (r *Repo) List(ctx context.Context, restaurantID string, start, stop int64) ([]domreview.Review, error) {
	ids, err := r.store.LRange(ctx, r.keys.Reviews(restaurantID), start, stop)
	if err != nil {
		return nil, domain.StoreFailure("lrange reviews "+restaurantID, err)
	}
	if len(ids) == 0 {
		return []domreview.Review{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.keys.ReviewDetails(id)
	}
	rows, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, domain.StoreFailure("hgetall reviews "+restaurantID, err)
	}

	out := make([]domreview.Review, 0, len(rows))
	for _, m := range rows {
		if len(m) == 0 {
			continue
		}
		rv, err := reviewFromHash(m)
		if err != nil {
			continue
		}
		out = append(out, rv)
	}
	return out, nil
}

// Get reads one review record.
func (r *Repo) Get(ctx context.Context, reviewID string) (domreview.Review, error) {
	m, err := r.store.HGetAll(ctx, r.keys.ReviewDetails(reviewID))
	if err != nil {
		return domreview.Review{}, domain.StoreFailure("hgetall review "+reviewID, err)
	}
	if len(m) == 0 {
		return domreview.Review{}, domain.ErrReviewNotFound
	}
	return reviewFromHash(m)
}

// Remove deletes the list entry and the record together.
// A record that belongs to another restaurant is reported as not found and left alone.
func (r *Repo) Remove(ctx context.Context, restaurantID, reviewID string) (domreview.RemoveOutcome, error) {
	m, err := r.store.HGetAll(ctx, r.keys.ReviewDetails(reviewID))
	if err != nil {
		return "", domain.StoreFailure("hgetall review "+reviewID, err)
	}
	if len(m) > 0 && m[fieldRestaurantID] != restaurantID {
		return "", domain.ErrReviewNotFound
	}

	var listed, recorded bool

	var g fanout.Group
	g.Go("ledger", func() error {
		n, err := r.store.LRem(ctx, r.keys.Reviews(restaurantID), 1, reviewID)
		listed = n > 0
		return err
	})
	g.Go("record", func() error {
		existed, err := r.store.Del(ctx, r.keys.ReviewDetails(reviewID))
		recorded = existed
		return err
	})
	if err := g.Wait().Err(); err != nil {
		return "", domain.StoreFailure("remove review "+reviewID, err)
	}

	switch {
	case listed && recorded:
		return domreview.Removed, nil
	case listed || recorded:
		return domreview.Partial, nil
	default:
		return "", domain.ErrReviewNotFound
	}
}
