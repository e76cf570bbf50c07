package ranking

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/kailas-cloud/dinedex/internal/domain"
)

func TestRegister_ScoreZero(t *testing.T) {
	repo, ms := newTestRepo(t)

	var calls int
	ms.zaddFn = func(_ context.Context, key string, score float64, member string) error {
		calls++
		if key != "app:restaurants_by_rating" || score != 0 || member != "r1" {
			t.Errorf("ZADD %s %v %s", key, score, member)
		}
		return nil
	}

	if err := repo.Register(context.Background(), "r1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("ZADD calls = %d, want 1", calls)
	}
}

func TestSetScore_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.zaddFn = func(context.Context, string, float64, string) error { return errors.New("down") }

	err := repo.SetScore(context.Background(), "r1", 3)
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestTop(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.zrevRangeFn = func(_ context.Context, _ string, start, stop int64) ([]string, error) {
		if start != 10 || stop != 19 {
			t.Errorf("range = %d..%d, want 10..19", start, stop)
		}
		return []string{"a", "b"}, nil
	}

	ids, err := repo.Top(context.Background(), 10, 19)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(ids, []string{"a", "b"}) {
		t.Errorf("ids = %v", ids)
	}
}

func TestTop_EmptyRangeSkipsStore(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.zrevRangeFn = func(context.Context, string, int64, int64) ([]string, error) {
		t.Fatal("store must not be called")
		return nil, nil
	}

	ids, err := repo.Top(context.Background(), 5, 4)
	if err != nil || len(ids) != 0 {
		t.Errorf("got (%v, %v)", ids, err)
	}
}

func TestScore(t *testing.T) {
	repo, ms := newTestRepo(t)

	if _, err := repo.Score(context.Background(), "r1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	ms.zscoreFn = func(context.Context, string, string) (float64, error) { return 3, nil }
	score, err := repo.Score(context.Background(), "r1")
	if err != nil || score != 3 {
		t.Errorf("got (%v, %v)", score, err)
	}
}
