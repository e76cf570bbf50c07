// Package rating records reviews and keeps restaurant averages and the
// rating ranking in step with them.
package rating

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dinedex/internal/domain"
	domrest "github.com/kailas-cloud/dinedex/internal/domain/restaurant"
	domreview "github.com/kailas-cloud/dinedex/internal/domain/review"
	"github.com/kailas-cloud/dinedex/internal/fanout"
)

const (
	taskLedger  = "ledger"
	taskStars   = "stars"
	taskAverage = "average"
	taskRanking = "ranking"
)

// Result is the outcome of recording a review.
type Result struct {
	Review        domreview.Review
	Count         int64
	AverageRating float64
}

// Service is the rating aggregator.
type Service struct {
	ledger      Ledger
	restaurants Restaurants
	ranking     Ranking
	logger      *zap.Logger
	newID       func() string
	now         func() time.Time

	reviewsRecorded prometheus.Counter
	indexFailures   *prometheus.CounterVec
}

// New creates a rating service.
func New(ledger Ledger, restaurants Restaurants, ranking Ranking, logger *zap.Logger) *Service {
	return &Service{
		ledger:      ledger,
		restaurants: restaurants,
		ranking:     ranking,
		logger:      logger,
		newID:       domain.NewID,
		now:         time.Now,
	}
}

// WithMetrics sets the recorded-reviews counter and the failed derived write
// counter (label "structure"). Either may be nil.
func (s *Service) WithMetrics(reviewsRecorded prometheus.Counter, indexFailures *prometheus.CounterVec) *Service {
	s.reviewsRecorded = reviewsRecorded
	s.indexFailures = indexFailures
	return s
}

// WithClock overrides id generation and the review timestamp source.
func (s *Service) WithClock(newID func() string, now func() time.Time) *Service {
	if newID != nil {
		s.newID = newID
	}
	if now != nil {
		s.now = now
	}
	return s
}

// RecordReview appends a review and updates the restaurant's totals.
//
// The ledger append and the star sum run concurrently; each is atomic on its
// own but together they are not a snapshot. The new average is then written to
// the record and the ranking concurrently. If only those two writes fail, the
// result is returned together with a *domain.PartialIndexError.
func (s *Service) RecordReview(
	ctx context.Context, restaurantID string, rating float64, text string,
) (Result, error) {
	rv, err := domreview.New(s.newID(), restaurantID, rating, text, s.now())
	if err != nil {
		return Result{}, fmt.Errorf("validate review: %w: %w", domain.ErrInvalidInput, err)
	}

	ok, err := s.restaurants.Exists(ctx, restaurantID)
	if err != nil {
		return Result{}, fmt.Errorf("check restaurant: %w", err)
	}
	if !ok {
		return Result{}, domain.ErrRestaurantNotFound
	}

	var (
		count int64
		sum   float64
	)
	var g fanout.Group
	g.Go(taskLedger, func() error {
		n, err := s.ledger.Append(ctx, rv)
		count = n
		return err
	})
	g.Go(taskStars, func() error {
		total, err := s.restaurants.AddStars(ctx, restaurantID, rv.Rating())
		sum = total
		return err
	})
	if err := g.Wait().Err(); err != nil {
		return Result{}, fmt.Errorf("record review: %w", err)
	}
	if s.reviewsRecorded != nil {
		s.reviewsRecorded.Inc()
	}

	avg := domrest.AverageRating(sum, count)
	res := Result{Review: rv, Count: count, AverageRating: avg}

	var g2 fanout.Group
	g2.Go(taskAverage, func() error { return s.restaurants.SetAverageRating(ctx, restaurantID, avg) })
	g2.Go(taskRanking, func() error { return s.ranking.SetScore(ctx, restaurantID, avg) })
	out := g2.Wait()
	if !out.OK() {
		failed := out.Failed()
		for _, name := range failed {
			if s.indexFailures != nil {
				s.indexFailures.WithLabelValues(name).Inc()
			}
		}
		s.logger.Warn("average rating not fully propagated",
			zap.String("restaurant_id", restaurantID),
			zap.Float64("average_rating", avg),
			zap.Strings("failed", failed),
			zap.Error(out.Err()),
		)
		return res, domain.NewPartialIndex(failed, out.Err())
	}

	return res, nil
}
