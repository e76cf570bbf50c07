// Package app is the composition root shared by the server, the provisioning
// command and the embeddable client: it turns a db.Store into wired services.
package app

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dinedex/internal/db"
	"github.com/kailas-cloud/dinedex/internal/keyspace"
	"github.com/kailas-cloud/dinedex/internal/metrics"
	"github.com/kailas-cloud/dinedex/internal/repository/cache"
	cuisinerepo "github.com/kailas-cloud/dinedex/internal/repository/cuisine"
	"github.com/kailas-cloud/dinedex/internal/repository/dedup"
	"github.com/kailas-cloud/dinedex/internal/repository/ranking"
	restaurantrepo "github.com/kailas-cloud/dinedex/internal/repository/restaurant"
	reviewrepo "github.com/kailas-cloud/dinedex/internal/repository/review"
	cuisineuc "github.com/kailas-cloud/dinedex/internal/usecase/cuisine"
	healthuc "github.com/kailas-cloud/dinedex/internal/usecase/health"
	provisionuc "github.com/kailas-cloud/dinedex/internal/usecase/provision"
	ratinguc "github.com/kailas-cloud/dinedex/internal/usecase/rating"
	restaurantuc "github.com/kailas-cloud/dinedex/internal/usecase/restaurant"
	reviewuc "github.com/kailas-cloud/dinedex/internal/usecase/review"
)

// Options tune the wiring. The zero value is usable.
type Options struct {
	KeyPrefix       string
	CacheTTL        time.Duration
	DefaultPageSize int
	MaxPageSize     int
	Logger          *zap.Logger

	// Instrumented feeds the dinedex_* counters. The caller registers them
	// once via metrics.RegisterDirectoryMetrics.
	Instrumented bool
}

// Services holds every use case built on one store.
type Services struct {
	Keys        keyspace.Namespace
	Restaurants *restaurantuc.Service
	Ratings     *ratinguc.Service
	Reviews     *reviewuc.Service
	Cuisines    *cuisineuc.Service
	Health      *healthuc.Service
	Provision   *provisionuc.Service
}

// Build wires repositories and services over store.
func Build(store db.Store, opts Options) (*Services, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	keys := keyspace.New(opts.KeyPrefix)

	restaurants := restaurantrepo.New(store, keys)
	cuisines := cuisinerepo.New(store, keys)
	ranks := ranking.New(store, keys)
	reviews := reviewrepo.New(store, keys)
	guard := dedup.New(store, keys)

	cacheTotal := metrics.CacheTotal
	if !opts.Instrumented {
		cacheTotal = nil
	}
	snapshots := cache.New(store, keys, opts.CacheTTL, cacheTotal, logger)

	restSvc := restaurantuc.New(restaurants, cuisines, ranks, guard, snapshots, logger).
		WithPagination(opts.DefaultPageSize, opts.MaxPageSize)
	ratingSvc := ratinguc.New(reviews, restaurants, ranks, logger)
	if opts.Instrumented {
		restSvc.WithMetrics(metrics.IndexWriteFailuresTotal, metrics.DedupRejectionsTotal)
		ratingSvc.WithMetrics(metrics.ReviewsRecordedTotal, metrics.IndexWriteFailuresTotal)
	}

	return &Services{
		Keys:        keys,
		Restaurants: restSvc,
		Ratings:     ratingSvc,
		Reviews: reviewuc.New(reviews, restaurants).
			WithPagination(opts.DefaultPageSize, opts.MaxPageSize),
		Cuisines:  cuisineuc.New(cuisines, restaurants),
		Health:    healthuc.New(store, store, keys.RestaurantIndex()),
		Provision: provisionuc.New(guard, store, logger),
	}, nil
}

// RestaurantIndex returns the full-text index definition for this namespace.
func (s *Services) RestaurantIndex() (*db.IndexDefinition, error) {
	return restaurantrepo.IndexDefinition(s.Keys)
}
