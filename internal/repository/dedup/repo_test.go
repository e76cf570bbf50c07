package dedup

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/dinedex/internal/db"
	"github.com/kailas-cloud/dinedex/internal/domain"
)

func TestSeenAndRecord(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	filter := map[string]bool{}
	ms.bfExistsFn = func(_ context.Context, key, item string) (bool, error) {
		if key != "app:bloom_restaurants" {
			t.Errorf("key = %q", key)
		}
		return filter[item], nil
	}
	ms.bfAddFn = func(_ context.Context, _, item string) (bool, error) {
		added := !filter[item]
		filter[item] = true
		return added, nil
	}

	seen, err := repo.Seen(ctx, "Nonna:1,2")
	if err != nil || seen {
		t.Fatalf("Seen before record = (%v, %v)", seen, err)
	}
	if err := repo.Record(ctx, "Nonna:1,2"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	seen, err = repo.Seen(ctx, "Nonna:1,2")
	if err != nil || !seen {
		t.Errorf("Seen after record = (%v, %v)", seen, err)
	}
}

func TestSeen_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.bfExistsFn = func(context.Context, string, string) (bool, error) {
		return false, &db.Error{Op: db.OpBloomExists, Err: errors.New("unknown command")}
	}
	if _, err := repo.Seen(context.Background(), "x"); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestProvision(t *testing.T) {
	repo, ms := newTestRepo(t)

	var order []string
	ms.delFn = func(_ context.Context, key string) (bool, error) {
		order = append(order, "del "+key)
		return true, nil
	}
	var got db.BloomReservation
	ms.bfReserveFn = func(_ context.Context, key string, r db.BloomReservation) error {
		order = append(order, "reserve "+key)
		got = r
		return nil
	}

	if err := repo.Provision(context.Background(), 1_000_000, 0.0001); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != "del app:bloom_restaurants" || order[1] != "reserve app:bloom_restaurants" {
		t.Errorf("call order = %v", order)
	}
	want := db.BloomReservation{ErrorRate: 0.0001, Capacity: 1_000_000, NonScaling: true}
	if got != want {
		t.Errorf("reservation = %+v, want %+v", got, want)
	}
}

func TestProvision_InvalidParams(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	if err := repo.Provision(ctx, 0, 0.01); err == nil {
		t.Error("expected error for zero capacity")
	}
	if err := repo.Provision(ctx, 10, 1); err == nil {
		t.Error("expected error for error rate 1")
	}
}
