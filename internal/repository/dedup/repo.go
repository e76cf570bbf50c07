// Package dedup guards restaurant creation with a bloom filter of
// name:location fingerprints. Entries are never removed.
package dedup

import (
	"context"
	"errors"

	"github.com/kailas-cloud/dinedex/internal/db"
	"github.com/kailas-cloud/dinedex/internal/domain"
	"github.com/kailas-cloud/dinedex/internal/keyspace"
)

// store is the consumer interface for the dedup filter (ISP).
type store interface {
	BFReserve(ctx context.Context, key string, r db.BloomReservation) error
	BFExists(ctx context.Context, key, item string) (bool, error)
	BFAdd(ctx context.Context, key, item string) (bool, error)
	Del(ctx context.Context, key string) (bool, error)
}

// Repo implements the dedup guard.
type Repo struct {
	store store
	keys  keyspace.Namespace
}

// New creates a dedup repository.
func New(s store, keys keyspace.Namespace) *Repo {
	return &Repo{store: s, keys: keys}
}

// Seen reports whether fingerprint was probably recorded before.
// False positives are possible, false negatives are not.
func (r *Repo) Seen(ctx context.Context, fingerprint string) (bool, error) {
	ok, err := r.store.BFExists(ctx, r.keys.Bloom(), fingerprint)
	if err != nil {
		return false, domain.StoreFailure("bf.exists", err)
	}
	return ok, nil
}

// Record adds fingerprint to the filter.
func (r *Repo) Record(ctx context.Context, fingerprint string) error {
	if _, err := r.store.BFAdd(ctx, r.keys.Bloom(), fingerprint); err != nil {
		return domain.StoreFailure("bf.add", err)
	}
	return nil
}

// Provision drops the filter and reserves an empty non-scaling one.
func (r *Repo) Provision(ctx context.Context, capacity int64, errorRate float64) error {
	if capacity <= 0 {
		return errors.New("bloom capacity must be positive")
	}
	if errorRate <= 0 || errorRate >= 1 {
		return errors.New("bloom error rate must be in (0, 1)")
	}

	if _, err := r.store.Del(ctx, r.keys.Bloom()); err != nil {
		return domain.StoreFailure("del bloom", err)
	}
	err := r.store.BFReserve(ctx, r.keys.Bloom(), db.BloomReservation{
		ErrorRate:  errorRate,
		Capacity:   capacity,
		NonScaling: true,
	})
	if err != nil {
		return domain.StoreFailure("bf.reserve", err)
	}
	return nil
}
