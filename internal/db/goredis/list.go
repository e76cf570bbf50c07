package goredis

import (
	"context"

	"github.com/kailas-cloud/dinedex/internal/db"
)

// LPush prepends values to a list.
func (s *Store) LPush(ctx context.Context, key string, values ...string) (int64, error) {
	n, err := s.client.LPush(ctx, key, toArgs(values)...).Result()
	if err != nil {
		return 0, &db.Error{Op: db.OpLPush, Err: err}
	}
	return n, nil
}

// LRange returns list elements between start and stop (inclusive).
func (s *Store) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	items, err := s.client.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, &db.Error{Op: db.OpLRange, Err: err}
	}
	return items, nil
}

// LRem removes up to count occurrences of value.
func (s *Store) LRem(ctx context.Context, key string, count int64, value string) (int64, error) {
	n, err := s.client.LRem(ctx, key, count, value).Result()
	if err != nil {
		return 0, &db.Error{Op: db.OpLRem, Err: err}
	}
	return n, nil
}
