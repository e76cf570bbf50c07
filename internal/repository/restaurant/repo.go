package restaurant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/dinedex/internal/db"
	"github.com/kailas-cloud/dinedex/internal/domain"
	domrest "github.com/kailas-cloud/dinedex/internal/domain/restaurant"
	"github.com/kailas-cloud/dinedex/internal/keyspace"
)

// store is the consumer interface for restaurants (ISP).
//
//nolint:interfacebloat // the restaurant hash, its details document and the name index live together
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error)
	HIncrByFloat(ctx context.Context, key, field string, delta float64) (float64, error)
	Exists(ctx context.Context, key string) (bool, error)
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	SearchList(ctx context.Context, index, query string, offset, limit int, fields []string) (*db.SearchResult, error)
}

// Repo implements the restaurant entity repository.
type Repo struct {
	store store
	keys  keyspace.Namespace
}

// New creates a restaurant repository.
func New(s store, keys keyspace.Namespace) *Repo {
	return &Repo{store: s, keys: keys}
}

// Save writes the identity fields of a new restaurant. Derived counters are left untouched.
func (r *Repo) Save(ctx context.Context, rest domrest.Restaurant) error {
	if err := r.store.HSet(ctx, r.keys.Restaurant(rest.ID()), restaurantToHash(rest)); err != nil {
		return domain.StoreFailure("hset restaurant "+rest.ID(), err)
	}
	return nil
}

// Get reads a restaurant record. Cuisines are not populated.
func (r *Repo) Get(ctx context.Context, id string) (domrest.Restaurant, error) {
	m, err := r.store.HGetAll(ctx, r.keys.Restaurant(id))
	if err != nil {
		return domrest.Restaurant{}, domain.StoreFailure("hgetall restaurant "+id, err)
	}
	if len(m) == 0 {
		return domrest.Restaurant{}, domain.ErrRestaurantNotFound
	}
	return restaurantFromHash(m)
}

// GetMany reads restaurants in order, omitting ids whose record is missing or unreadable.
func (r *Repo) GetMany(ctx context.Context, ids []string) ([]domrest.Restaurant, error) {
	if len(ids) == 0 {
		return []domrest.Restaurant{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.keys.Restaurant(id)
	}

	rows, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, domain.StoreFailure("hgetall restaurants", err)
	}

	out := make([]domrest.Restaurant, 0, len(rows))
	for _, m := range rows {
		if len(m) == 0 {
			continue
		}
		rest, err := restaurantFromHash(m)
		if err != nil {
			continue
		}
		out = append(out, rest)
	}
	return out, nil
}

// Exists reports whether the restaurant record is present.
func (r *Repo) Exists(ctx context.Context, id string) (bool, error) {
	ok, err := r.store.Exists(ctx, r.keys.Restaurant(id))
	if err != nil {
		return false, domain.StoreFailure("exists restaurant "+id, err)
	}
	return ok, nil
}

// IncrementViewCount bumps viewCount by one and returns the new value.
func (r *Repo) IncrementViewCount(ctx context.Context, id string) (int64, error) {
	n, err := r.store.HIncrBy(ctx, r.keys.Restaurant(id), fieldViewCount, 1)
	if err != nil {
		return 0, domain.StoreFailure("increment views "+id, err)
	}
	return n, nil
}

// AddStars adds rating to totalStars and returns the new sum.
func (r *Repo) AddStars(ctx context.Context, id string, rating float64) (float64, error) {
	sum, err := r.store.HIncrByFloat(ctx, r.keys.Restaurant(id), fieldTotalStars, rating)
	if err != nil {
		return 0, domain.StoreFailure("add stars "+id, err)
	}
	return sum, nil
}

// SetAverageRating stores the derived average on the restaurant hash.
func (r *Repo) SetAverageRating(ctx context.Context, id string, avg float64) error {
	fields := map[string]string{fieldAverageRating: formatFloat(avg)}
	if err := r.store.HSet(ctx, r.keys.Restaurant(id), fields); err != nil {
		return domain.StoreFailure("set average rating "+id, err)
	}
	return nil
}

// SetDetails replaces the details document.
func (r *Repo) SetDetails(ctx context.Context, id string, d domrest.Details) error {
	if err := r.store.JSONSet(ctx, r.keys.RestaurantDetails(id), "$", d.Raw()); err != nil {
		return domain.StoreFailure("json.set details "+id, err)
	}
	return nil
}

// GetDetails returns the details document, ErrDetailsNotFound when none was set.
func (r *Repo) GetDetails(ctx context.Context, id string) (domrest.Details, error) {
	raw, err := r.store.JSONGet(ctx, r.keys.RestaurantDetails(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domrest.Details{}, domain.ErrDetailsNotFound
		}
		return domrest.Details{}, domain.StoreFailure("json.get details "+id, err)
	}
	return domrest.ReconstructDetails(raw), nil
}

// SearchByName runs a full-text match on the name field. Query syntax is escaped
// except a trailing '*' per term, which searches by prefix. Blank queries match nothing.
func (r *Repo) SearchByName(ctx context.Context, query string, limit int) ([]domrest.Restaurant, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domrest.Restaurant{}, nil
	}

	q := fmt.Sprintf("@%s:(%s)", fieldName, db.EscapeTerms(query))
	res, err := r.store.SearchList(ctx, r.keys.RestaurantIndex(), q, 0, limit, nil)
	if err != nil {
		return nil, domain.StoreFailure("search restaurants", err)
	}

	out := make([]domrest.Restaurant, 0, len(res.Entries))
	for _, e := range res.Entries {
		rest, err := restaurantFromHash(e.Fields)
		if err != nil {
			continue
		}
		out = append(out, rest)
	}
	return out, nil
}
