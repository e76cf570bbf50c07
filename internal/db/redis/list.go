package redis

import (
	"context"

	"github.com/kailas-cloud/dinedex/internal/db"
)

// LPush prepends values to a list.
func (s *Store) LPush(ctx context.Context, key string, values ...string) (int64, error) {
	cmd := s.b().Lpush().Key(key).Element(values...).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpLPush, Err: err}
	}
	return n, nil
}

// LRange returns list elements between start and stop (inclusive).
func (s *Store) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	cmd := s.b().Lrange().Key(key).Start(start).Stop(stop).Build()
	items, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpLRange, Err: err}
	}
	return items, nil
}

// LRem removes up to count occurrences of value.
func (s *Store) LRem(ctx context.Context, key string, count int64, value string) (int64, error) {
	cmd := s.b().Lrem().Key(key).Count(count).Element(value).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpLRem, Err: err}
	}
	return n, nil
}
