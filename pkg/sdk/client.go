package dinedex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/dinedex/internal/app"
	"github.com/kailas-cloud/dinedex/internal/config"
	"github.com/kailas-cloud/dinedex/internal/db"
	"github.com/kailas-cloud/dinedex/internal/domain/page"
	domrest "github.com/kailas-cloud/dinedex/internal/domain/restaurant"
	domreview "github.com/kailas-cloud/dinedex/internal/domain/review"
	provisionuc "github.com/kailas-cloud/dinedex/internal/usecase/provision"
	ratinguc "github.com/kailas-cloud/dinedex/internal/usecase/rating"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped for fakes in tests.
type restaurantUseCase interface {
	Create(ctx context.Context, name, location string, cuisines []string) (domrest.Restaurant, error)
	Get(ctx context.Context, id string) (domrest.Restaurant, error)
	Top(ctx context.Context, req page.Request) ([]domrest.Restaurant, error)
	Search(ctx context.Context, query string, limit int) ([]domrest.Restaurant, error)
	SetDetails(ctx context.Context, id string, raw []byte) (domrest.Details, error)
	GetDetails(ctx context.Context, id string) (domrest.Details, error)
}

type ratingUseCase interface {
	RecordReview(ctx context.Context, restaurantID string, rating float64, text string) (ratinguc.Result, error)
}

type reviewUseCase interface {
	List(ctx context.Context, restaurantID string, req page.Request) ([]domreview.Review, error)
	Get(ctx context.Context, restaurantID, reviewID string) (domreview.Review, error)
	Remove(ctx context.Context, restaurantID, reviewID string) (domreview.RemoveOutcome, error)
}

type cuisineUseCase interface {
	List(ctx context.Context) ([]string, error)
	Restaurants(ctx context.Context, cuisine string) ([]domrest.Restaurant, error)
}

type provisionUseCase interface {
	ResetBloom(ctx context.Context, cfg provisionuc.BloomConfig) error
	RecreateIndex(ctx context.Context, def *db.IndexDefinition) error
}

// Client is the dinedex SDK entry point.
type Client struct {
	store        db.Store
	restSvc      restaurantUseCase
	ratingSvc    ratingUseCase
	reviewSvc    reviewUseCase
	cuisineSvc   cuisineUseCase
	healthSvc    healthUseCase
	provisionSvc provisionUseCase
	indexDef     func() (*db.IndexDefinition, error)
	obs          *observer
}

// New creates a dinedex Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("dinedex: database address required (use WithRueidis or WithGoRedis)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("dinedex: database not ready: %w", err)
	}

	c, err := wireClient(store, cfg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case driverRueidis, driverGoRedis:
	default:
		return nil, fmt.Errorf("dinedex: unknown driver %q", cfg.driver)
	}
	s, err := app.OpenStore(config.DatabaseConfig{
		Driver:   cfg.driver,
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("dinedex: %w", err)
	}
	return s, nil
}

func wireClient(store db.Store, cfg *clientConfig) (*Client, error) {
	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	svc, err := app.Build(store, app.Options{
		KeyPrefix:       cfg.keyPrefix,
		CacheTTL:        cfg.cacheTTL,
		DefaultPageSize: cfg.defaultPageSize,
		MaxPageSize:     cfg.maxPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("dinedex: %w", err)
	}

	return &Client{
		store:        store,
		restSvc:      svc.Restaurants,
		ratingSvc:    svc.Ratings,
		reviewSvc:    svc.Reviews,
		cuisineSvc:   svc.Cuisines,
		healthSvc:    svc.Health,
		provisionSvc: svc.Provision,
		indexDef:     svc.RestaurantIndex,
		obs:          obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Restaurants returns the restaurant service.
func (c *Client) Restaurants() *RestaurantService {
	return &RestaurantService{svc: c.restSvc, obs: c.obs}
}

// Reviews returns the review service for one restaurant.
func (c *Client) Reviews(restaurantID string) *ReviewService {
	return &ReviewService{
		restaurantID: restaurantID,
		ratings:      c.ratingSvc,
		reviews:      c.reviewSvc,
		obs:          c.obs,
	}
}

// Cuisines returns the cuisine service.
func (c *Client) Cuisines() *CuisineService {
	return &CuisineService{svc: c.cuisineSvc, obs: c.obs}
}
