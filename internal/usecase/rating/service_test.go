package rating

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dinedex/internal/domain"
	domreview "github.com/kailas-cloud/dinedex/internal/domain/review"
)

// --- Mocks ---

type mockLedger struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (m *mockLedger) Append(_ context.Context, rv domreview.Review) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.counts[rv.RestaurantID()]++
	return m.counts[rv.RestaurantID()], nil
}

type mockRestaurants struct {
	mu     sync.Mutex
	known  map[string]bool
	stars  map[string]float64
	avg    map[string]float64
	avgErr error
}

func (m *mockRestaurants) Exists(_ context.Context, id string) (bool, error) {
	return m.known[id], nil
}

func (m *mockRestaurants) AddStars(_ context.Context, id string, rating float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stars[id] += rating
	return m.stars[id], nil
}

func (m *mockRestaurants) SetAverageRating(_ context.Context, id string, avg float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.avgErr != nil {
		return m.avgErr
	}
	m.avg[id] = avg
	return nil
}

type mockRanking struct {
	mu     sync.Mutex
	scores map[string]float64
	err    error
}

func (m *mockRanking) SetScore(_ context.Context, id string, score float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.scores[id] = score
	return nil
}

type fixture struct {
	svc     *Service
	ledger  *mockLedger
	rests   *mockRestaurants
	ranking *mockRanking
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		ledger: &mockLedger{counts: map[string]int64{}},
		rests: &mockRestaurants{
			known: map[string]bool{"r1": true},
			stars: map[string]float64{},
			avg:   map[string]float64{},
		},
		ranking: &mockRanking{scores: map[string]float64{}},
	}
	n := 0
	f.svc = New(f.ledger, f.rests, f.ranking, zap.NewNop()).WithClock(
		func() string { n++; return fmt.Sprintf("v%d", n) },
		func() time.Time { return time.UnixMilli(1_700_000_000_000) },
	)
	return f
}

// --- Tests ---

func TestRecordReview_RunningAverage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		rating  float64
		wantAvg float64
	}{
		{4, 4},
		{2, 3},
		{5, 3.7},
		{1, 3},
	}
	for i, tc := range tests {
		res, err := f.svc.RecordReview(ctx, "r1", tc.rating, "fine")
		if err != nil {
			t.Fatalf("review %d: %v", i, err)
		}
		if res.AverageRating != tc.wantAvg {
			t.Errorf("review %d: avg = %v, want %v", i, res.AverageRating, tc.wantAvg)
		}
		if res.Count != int64(i+1) {
			t.Errorf("review %d: count = %d", i, res.Count)
		}
		if f.rests.avg["r1"] != tc.wantAvg || f.ranking.scores["r1"] != tc.wantAvg {
			t.Errorf("review %d: stored avg %v, ranking %v, want %v",
				i, f.rests.avg["r1"], f.ranking.scores["r1"], tc.wantAvg)
		}
	}
}

func TestRecordReview_StampsReview(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.RecordReview(context.Background(), "r1", 5, "  great  ")
	if err != nil {
		t.Fatal(err)
	}
	rv := res.Review
	if rv.ID() != "v1" || rv.Text() != "great" || rv.Timestamp() != 1_700_000_000_000 {
		t.Errorf("unexpected review: %+v", rv)
	}
}

func TestRecordReview_Validation(t *testing.T) {
	f := newFixture(t)
	for _, rating := range []float64{0, 5.5, -1, math.NaN(), math.Inf(-1)} {
		if _, err := f.svc.RecordReview(context.Background(), "r1", rating, "x"); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("rating %v: expected ErrInvalidInput, got %v", rating, err)
		}
	}
	if _, err := f.svc.RecordReview(context.Background(), "r1", 3, " "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("blank text: expected ErrInvalidInput, got %v", err)
	}
	if len(f.ledger.counts) != 0 {
		t.Error("invalid reviews must not be appended")
	}
}

func TestRecordReview_UnknownRestaurant(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.RecordReview(context.Background(), "nope", 3, "x")
	if !errors.Is(err, domain.ErrRestaurantNotFound) {
		t.Fatalf("expected ErrRestaurantNotFound, got %v", err)
	}
	if f.ledger.counts["nope"] != 0 {
		t.Error("review must not be appended for a missing restaurant")
	}
}

func TestRecordReview_LedgerFailure(t *testing.T) {
	f := newFixture(t)
	f.ledger.err = domain.StoreFailure("lpush", errors.New("down"))

	_, err := f.svc.RecordReview(context.Background(), "r1", 3, "x")
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if _, ok := f.ranking.scores["r1"]; ok {
		t.Error("average must not be propagated when the ledger append fails")
	}
}

func TestRecordReview_PartialPropagation(t *testing.T) {
	f := newFixture(t)
	f.ranking.err = errors.New("zadd failed")
	recorded := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_reviews_recorded"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_index_failures"}, []string{"structure"})
	f.svc.WithMetrics(recorded, failures)

	res, err := f.svc.RecordReview(context.Background(), "r1", 4, "x")
	if !errors.Is(err, domain.ErrPartialIndex) {
		t.Fatalf("expected ErrPartialIndex, got %v", err)
	}
	if res.AverageRating != 4 || f.rests.avg["r1"] != 4 {
		t.Errorf("record average should still be written, got %v / %v", res.AverageRating, f.rests.avg["r1"])
	}
	if testutil.ToFloat64(recorded) != 1 {
		t.Error("review should be counted as recorded")
	}
	if testutil.ToFloat64(failures.WithLabelValues("ranking")) != 1 {
		t.Error("ranking failure should be counted")
	}
}
