package restaurant

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dinedex/internal/domain"
	"github.com/kailas-cloud/dinedex/internal/domain/page"
	domrest "github.com/kailas-cloud/dinedex/internal/domain/restaurant"
	"github.com/kailas-cloud/dinedex/internal/fanout"
)

// Fan-out task names. Cuisine tasks are suffixed with the cuisine name.
const (
	taskRecord  = "record"
	taskCuisine = "cuisine"
	taskRanking = "ranking"
	taskDedup   = "dedup"
)

// Service handles restaurant creation, reads and details.
type Service struct {
	repo     Repository
	cuisines CuisineIndex
	ranking  Ranking
	dedup    DedupGuard
	cache    Cache
	logger   *zap.Logger
	newID    func() string

	defaultPageSize int
	maxPageSize     int

	indexFailures   *prometheus.CounterVec
	dedupRejections prometheus.Counter
}

// New creates a restaurant service.
func New(
	repo Repository,
	cuisines CuisineIndex,
	ranking Ranking,
	dedup DedupGuard,
	cache Cache,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:            repo,
		cuisines:        cuisines,
		ranking:         ranking,
		dedup:           dedup,
		cache:           cache,
		logger:          logger,
		newID:           domain.NewID,
		defaultPageSize: 10,
		maxPageSize:     100,
	}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// WithMetrics sets the counters for failed derived writes (label "structure")
// and dedup rejections. Either may be nil.
func (s *Service) WithMetrics(indexFailures *prometheus.CounterVec, dedupRejections prometheus.Counter) *Service {
	s.indexFailures = indexFailures
	s.dedupRejections = dedupRejections
	return s
}

// WithIDGenerator overrides id generation.
func (s *Service) WithIDGenerator(fn func() string) *Service {
	if fn != nil {
		s.newID = fn
	}
	return s
}

// Create validates and stores a new restaurant, then fans out the derived writes.
// When only derived writes fail, the restaurant is returned together with a
// *domain.PartialIndexError naming them.
func (s *Service) Create(ctx context.Context, name, location string, cuisines []string) (domrest.Restaurant, error) {
	rest, err := domrest.New(s.newID(), name, location, cuisines)
	if err != nil {
		return domrest.Restaurant{}, fmt.Errorf("validate restaurant: %w: %w", domain.ErrInvalidInput, err)
	}

	seen, err := s.dedup.Seen(ctx, rest.Fingerprint())
	if err != nil {
		return domrest.Restaurant{}, fmt.Errorf("check duplicate: %w", err)
	}
	if seen {
		if s.dedupRejections != nil {
			s.dedupRejections.Inc()
		}
		return domrest.Restaurant{}, fmt.Errorf("restaurant %q at %q: %w", rest.Name(), rest.Location(), domain.ErrAlreadyExists)
	}

	var g fanout.Group
	g.Go(taskRecord, func() error { return s.repo.Save(ctx, rest) })
	for _, c := range rest.Cuisines() {
		g.Go(taskCuisine+":"+c, func() error { return s.cuisines.Attach(ctx, rest.ID(), c) })
	}
	g.Go(taskRanking, func() error { return s.ranking.Register(ctx, rest.ID()) })
	g.Go(taskDedup, func() error { return s.dedup.Record(ctx, rest.Fingerprint()) })
	res := g.Wait()

	if err := res.Failure(taskRecord); err != nil {
		s.logger.Warn("restaurant record write failed",
			zap.String("restaurant_id", rest.ID()),
			zap.Strings("failed", res.Failed()),
			zap.Error(err),
		)
		return domrest.Restaurant{}, fmt.Errorf("save restaurant: %w", err)
	}

	if !res.OK() {
		failed := res.Failed()
		for _, name := range failed {
			s.incIndexFailure(name)
		}
		s.logger.Warn("restaurant created with missing index entries",
			zap.String("restaurant_id", rest.ID()),
			zap.Strings("failed", failed),
			zap.Error(res.Err()),
		)
		return rest, domain.NewPartialIndex(failed, res.Err())
	}

	return rest, nil
}

// Get returns a restaurant through the cache. A hit is served as is;
// a miss counts a view, reads the record and refreshes the cache.
func (s *Service) Get(ctx context.Context, id string) (domrest.Restaurant, error) {
	if rest, ok := s.cache.Get(ctx, id); ok {
		return rest, nil
	}

	if err := s.ensureExists(ctx, id); err != nil {
		return domrest.Restaurant{}, err
	}

	if _, err := s.repo.IncrementViewCount(ctx, id); err != nil {
		s.logger.Warn("view count increment failed", zap.String("restaurant_id", id), zap.Error(err))
	}

	rest, err := s.repo.Get(ctx, id)
	if err != nil {
		return domrest.Restaurant{}, fmt.Errorf("get restaurant: %w", err)
	}

	cuisines, err := s.cuisines.CuisinesOf(ctx, id)
	if err != nil {
		s.logger.Warn("cuisine lookup failed", zap.String("restaurant_id", id), zap.Error(err))
	} else {
		rest = rest.WithCuisines(cuisines)
	}

	s.cache.Put(ctx, rest)
	return rest, nil
}

// Top returns one page of restaurants ordered by average rating, highest first.
// Ranked ids whose record is missing are skipped.
func (s *Service) Top(ctx context.Context, req page.Request) ([]domrest.Restaurant, error) {
	req = req.Normalize(s.defaultPageSize, s.maxPageSize)

	ids, err := s.ranking.Top(ctx, req.Offset(), req.Stop())
	if err != nil {
		return nil, fmt.Errorf("rank restaurants: %w", err)
	}
	rests, err := s.repo.GetMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load ranked restaurants: %w", err)
	}
	return rests, nil
}

// Search matches restaurant names. limit is clamped to the page size limits.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]domrest.Restaurant, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query is required: %w", domain.ErrInvalidInput)
	}
	limit = page.Request{Limit: limit}.Normalize(s.defaultPageSize, s.maxPageSize).Limit

	rests, err := s.repo.SearchByName(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search restaurants: %w", err)
	}
	return rests, nil
}

// SetDetails replaces the details document of an existing restaurant.
func (s *Service) SetDetails(ctx context.Context, id string, raw []byte) (domrest.Details, error) {
	d, err := domrest.NewDetails(raw)
	if err != nil {
		return domrest.Details{}, fmt.Errorf("validate details: %w: %w", domain.ErrInvalidInput, err)
	}
	if err := s.ensureExists(ctx, id); err != nil {
		return domrest.Details{}, err
	}
	if err := s.repo.SetDetails(ctx, id, d); err != nil {
		return domrest.Details{}, fmt.Errorf("set details: %w", err)
	}
	return d, nil
}

// GetDetails returns the details document of an existing restaurant.
func (s *Service) GetDetails(ctx context.Context, id string) (domrest.Details, error) {
	if err := s.ensureExists(ctx, id); err != nil {
		return domrest.Details{}, err
	}
	d, err := s.repo.GetDetails(ctx, id)
	if err != nil {
		return domrest.Details{}, fmt.Errorf("get details: %w", err)
	}
	return d, nil
}

func (s *Service) ensureExists(ctx context.Context, id string) error {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check restaurant: %w", err)
	}
	if !ok {
		return domain.ErrRestaurantNotFound
	}
	return nil
}

func (s *Service) incIndexFailure(task string) {
	if s.indexFailures == nil {
		return
	}
	structure, _, _ := strings.Cut(task, ":")
	s.indexFailures.WithLabelValues(structure).Inc()
}
