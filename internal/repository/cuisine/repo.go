// Package cuisine maintains the two mirrored membership sets between
// restaurants and the cuisines they serve.
package cuisine

import (
	"context"
	"slices"

	"github.com/kailas-cloud/dinedex/internal/domain"
	"github.com/kailas-cloud/dinedex/internal/fanout"
	"github.com/kailas-cloud/dinedex/internal/keyspace"
)

// store is the consumer interface for cuisine membership (ISP).
type store interface {
	SAdd(ctx context.Context, key string, members ...string) (int64, error)
	SMembers(ctx context.Context, key string) ([]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements the cuisine index.
type Repo struct {
	store store
	keys  keyspace.Namespace
}

// New creates a cuisine repository.
func New(s store, keys keyspace.Namespace) *Repo {
	return &Repo{store: s, keys: keys}
}

// Attach adds restaurantID to the cuisine set and cuisine to the restaurant's set.
// The two writes are independent: either may land without the other.
func (r *Repo) Attach(ctx context.Context, restaurantID, cuisine string) error {
	var g fanout.Group
	g.Go("cuisine", func() error {
		_, err := r.store.SAdd(ctx, r.keys.Cuisine(cuisine), restaurantID)
		return err
	})
	g.Go("restaurant_cuisines", func() error {
		_, err := r.store.SAdd(ctx, r.keys.RestaurantCuisines(restaurantID), cuisine)
		return err
	})
	if err := g.Wait().Err(); err != nil {
		return domain.StoreFailure("attach cuisine "+cuisine, err)
	}
	return nil
}

// List returns every cuisine that has at least one member, sorted by name.
func (r *Repo) List(ctx context.Context) ([]string, error) {
	keys, err := r.store.Scan(ctx, r.keys.CuisinePattern())
	if err != nil {
		return nil, domain.StoreFailure("scan cuisines", err)
	}

	names := make([]string, 0, len(keys))
	for _, k := range keys {
		if name, ok := r.keys.CuisineName(k); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// Members returns the restaurant ids serving cuisine. Unknown cuisines yield an empty slice.
func (r *Repo) Members(ctx context.Context, cuisine string) ([]string, error) {
	ids, err := r.store.SMembers(ctx, r.keys.Cuisine(cuisine))
	if err != nil {
		return nil, domain.StoreFailure("smembers cuisine "+cuisine, err)
	}
	if ids == nil {
		ids = []string{}
	}
	slices.Sort(ids)
	return ids, nil
}

// CuisinesOf returns the cuisine names attached to a restaurant, sorted.
func (r *Repo) CuisinesOf(ctx context.Context, restaurantID string) ([]string, error) {
	names, err := r.store.SMembers(ctx, r.keys.RestaurantCuisines(restaurantID))
	if err != nil {
		return nil, domain.StoreFailure("smembers restaurant cuisines "+restaurantID, err)
	}
	if names == nil {
		names = []string{}
	}
	slices.Sort(names)
	return names, nil
}
