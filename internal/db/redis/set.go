package redis

import (
	"context"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/dinedex/internal/db"
)

// SAdd adds members to a set and returns how many were new.
func (s *Store) SAdd(ctx context.Context, key string, members ...string) (int64, error) {
	cmd := s.b().Sadd().Key(key).Member(members...).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpSAdd, Err: err}
	}
	return n, nil
}

// SRem removes members from a set and returns how many were present.
func (s *Store) SRem(ctx context.Context, key string, members ...string) (int64, error) {
	cmd := s.b().Srem().Key(key).Member(members...).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpSRem, Err: err}
	}
	return n, nil
}

// SMembers returns all members of a set.
func (s *Store) SMembers(ctx context.Context, key string) ([]string, error) {
	cmd := s.b().Smembers().Key(key).Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpSMembers, Err: err}
	}
	return members, nil
}

// ZAdd sets the score of a sorted-set member.
func (s *Store) ZAdd(ctx context.Context, key string, score float64, member string) error {
	cmd := s.b().Zadd().Key(key).ScoreMember().ScoreMember(score, member).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpZAdd, Err: err}
	}
	return nil
}

// ZRevRange returns members by rank, highest score first.
func (s *Store) ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	cmd := s.b().Zrange().Key(key).
		Min(strconv.FormatInt(start, 10)).
		Max(strconv.FormatInt(stop, 10)).
		Rev().Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpZRange, Err: err}
	}
	return members, nil
}

// ZScore returns a member's score.
func (s *Store) ZScore(ctx context.Context, key, member string) (float64, error) {
	cmd := s.b().Zscore().Key(key).Member(member).Build()
	score, err := s.do(ctx, cmd).AsFloat64()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return 0, db.ErrKeyNotFound
		}
		return 0, &db.Error{Op: db.OpZScore, Err: err}
	}
	return score, nil
}
