package redis

import (
	"context"
	"strconv"

	"github.com/kailas-cloud/dinedex/internal/db"
)

// BFReserve creates an empty bloom filter.
func (s *Store) BFReserve(ctx context.Context, key string, r db.BloomReservation) error {
	args := []string{
		strconv.FormatFloat(r.ErrorRate, 'f', -1, 64),
		strconv.FormatInt(r.Capacity, 10),
	}
	if r.NonScaling {
		args = append(args, "NONSCALING")
	}
	cmd := s.b().Arbitrary("BF.RESERVE").Keys(key).Args(args...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpBloomReserve, Err: err}
	}
	return nil
}

// BFExists reports whether item may have been added.
func (s *Store) BFExists(ctx context.Context, key, item string) (bool, error) {
	cmd := s.b().Arbitrary("BF.EXISTS").Keys(key).Args(item).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return false, &db.Error{Op: db.OpBloomExists, Err: err}
	}
	return n != 0, nil
}

// BFAdd inserts item; BF.ADD creates the filter with server defaults when missing.
func (s *Store) BFAdd(ctx context.Context, key, item string) (bool, error) {
	cmd := s.b().Arbitrary("BF.ADD").Keys(key).Args(item).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return false, &db.Error{Op: db.OpBloomAdd, Err: err}
	}
	return n != 0, nil
}
