// Package cache holds short-lived JSON snapshots of restaurants.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dinedex/internal/db"
	domrest "github.com/kailas-cloud/dinedex/internal/domain/restaurant"
	"github.com/kailas-cloud/dinedex/internal/keyspace"
)

// DefaultTTL is how long a snapshot lives when no TTL is configured.
const DefaultTTL = 300 * time.Second

// store is the consumer interface for the restaurant cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RestaurantCache reads and writes restaurant snapshots. Store failures never
// reach the caller: a failed read is a miss and a failed write is logged.
type RestaurantCache struct {
	store      store
	keys       keyspace.Namespace
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a restaurant cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly; nil disables it.
func New(
	s store,
	keys keyspace.Namespace,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *RestaurantCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RestaurantCache{
		store:      s,
		keys:       keys,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// TTL returns the snapshot lifetime.
func (c *RestaurantCache) TTL() time.Duration { return c.ttl }

// Get returns the cached snapshot. ok is false on a miss.
func (c *RestaurantCache) Get(ctx context.Context, id string) (domrest.Restaurant, bool) {
	rest, ok := c.read(ctx, id)
	if ok {
		c.incCache("hit")
	} else {
		c.incCache("miss")
	}
	return rest, ok
}

func (c *RestaurantCache) read(ctx context.Context, id string) (domrest.Restaurant, bool) {
	data, err := c.store.Get(ctx, c.keys.RestaurantCache(id))
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("restaurant cache read failed",
				zap.String("restaurant_id", id),
				zap.Error(err),
			)
		}
		return domrest.Restaurant{}, false
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil || snap.ID == "" {
		c.logger.Warn("restaurant cache entry corrupt",
			zap.String("restaurant_id", id),
			zap.Error(err),
		)
		return domrest.Restaurant{}, false
	}
	return snap.restaurant(), true
}

// Put stores a snapshot, overwriting any previous one and resetting its TTL.
func (c *RestaurantCache) Put(ctx context.Context, rest domrest.Restaurant) {
	data, err := json.Marshal(newSnapshot(rest))
	if err != nil {
		c.logger.Warn("restaurant cache encode failed", zap.String("restaurant_id", rest.ID()), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, c.keys.RestaurantCache(rest.ID()), data, c.ttl); err != nil {
		c.logger.Warn("restaurant cache write failed",
			zap.String("restaurant_id", rest.ID()),
			zap.Error(err),
		)
	}
}

func (c *RestaurantCache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

type snapshot struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	Cuisines      []string `json:"cuisines,omitempty"`
	ViewCount     int64    `json:"viewCount"`
	TotalStars    float64  `json:"totalStars"`
	AverageRating float64  `json:"averageRating"`
}

func newSnapshot(r domrest.Restaurant) snapshot {
	return snapshot{
		ID:            r.ID(),
		Name:          r.Name(),
		Location:      r.Location(),
		Cuisines:      r.Cuisines(),
		ViewCount:     r.ViewCount(),
		TotalStars:    r.TotalStars(),
		AverageRating: r.AverageRating(),
	}
}

func (s snapshot) restaurant() domrest.Restaurant {
	return domrest.Reconstruct(s.ID, s.Name, s.Location, s.Cuisines, s.ViewCount, s.TotalStars, s.AverageRating)
}
