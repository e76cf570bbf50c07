package cache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/dinedex/internal/db"
	"github.com/kailas-cloud/dinedex/internal/keyspace"
)

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

type testCache struct {
	*RestaurantCache
	store   *mockKVStore
	counter *prometheus.CounterVec
	logs    *observer.ObservedLogs
}

func newTestCache(t *testing.T) testCache {
	t.Helper()
	ms := &mockKVStore{}
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_cache_total"}, []string{"result"})
	core, logs := observer.New(zap.WarnLevel)
	c := New(ms, keyspace.New("app:"), 0, counter, zap.New(core))
	return testCache{RestaurantCache: c, store: ms, counter: counter, logs: logs}
}
