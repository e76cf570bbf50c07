package ranking

import (
	"context"
	"testing"

	"github.com/kailas-cloud/dinedex/internal/db"
	"github.com/kailas-cloud/dinedex/internal/keyspace"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	zaddFn      func(ctx context.Context, key string, score float64, member string) error
	zrevRangeFn func(ctx context.Context, key string, start, stop int64) ([]string, error)
	zscoreFn    func(ctx context.Context, key, member string) (float64, error)
}

func (m *mockStore) ZAdd(ctx context.Context, key string, score float64, member string) error {
	if m.zaddFn != nil {
		return m.zaddFn(ctx, key, score, member)
	}
	return nil
}

func (m *mockStore) ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	if m.zrevRangeFn != nil {
		return m.zrevRangeFn(ctx, key, start, stop)
	}
	return nil, nil
}

func (m *mockStore) ZScore(ctx context.Context, key, member string) (float64, error) {
	if m.zscoreFn != nil {
		return m.zscoreFn(ctx, key, member)
	}
	return 0, db.ErrKeyNotFound
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, keyspace.New("app:")), ms
}
