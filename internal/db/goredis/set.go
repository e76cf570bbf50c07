package goredis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/kailas-cloud/dinedex/internal/db"
)

// SAdd adds members to a set and returns how many were new.
func (s *Store) SAdd(ctx context.Context, key string, members ...string) (int64, error) {
	n, err := s.client.SAdd(ctx, key, toArgs(members)...).Result()
	if err != nil {
		return 0, &db.Error{Op: db.OpSAdd, Err: err}
	}
	return n, nil
}

// SRem removes members from a set.
func (s *Store) SRem(ctx context.Context, key string, members ...string) (int64, error) {
	n, err := s.client.SRem(ctx, key, toArgs(members)...).Result()
	if err != nil {
		return 0, &db.Error{Op: db.OpSRem, Err: err}
	}
	return n, nil
}

// SMembers returns all members of a set.
func (s *Store) SMembers(ctx context.Context, key string) ([]string, error) {
	members, err := s.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, &db.Error{Op: db.OpSMembers, Err: err}
	}
	return members, nil
}

// ZAdd sets the score of a sorted-set member.
func (s *Store) ZAdd(ctx context.Context, key string, score float64, member string) error {
	if err := s.client.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err(); err != nil {
		return &db.Error{Op: db.OpZAdd, Err: err}
	}
	return nil
}

// ZRevRange returns members by rank, highest score first.
func (s *Store) ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	members, err := s.client.ZRevRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, &db.Error{Op: db.OpZRange, Err: err}
	}
	return members, nil
}

// ZScore returns a member's score.
func (s *Store) ZScore(ctx context.Context, key, member string) (float64, error) {
	score, err := s.client.ZScore(ctx, key, member).Result()
	if err != nil {
		if isNil(err) {
			return 0, db.ErrKeyNotFound
		}
		return 0, &db.Error{Op: db.OpZScore, Err: err}
	}
	return score, nil
}
