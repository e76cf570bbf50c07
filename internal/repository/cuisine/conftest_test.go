package cuisine

import (
	"context"
	"sync"
	"testing"

	"github.com/kailas-cloud/dinedex/internal/keyspace"
)

// mockStore implements the consumer interface for tests.
// sadd is called from concurrent goroutines, so recorded calls are guarded.
type mockStore struct {
	saddFn     func(ctx context.Context, key string, members ...string) (int64, error)
	smembersFn func(ctx context.Context, key string) ([]string, error)
	scanFn     func(ctx context.Context, pattern string) ([]string, error)

	mu    sync.Mutex
	sadds map[string][]string
}

func (m *mockStore) SAdd(ctx context.Context, key string, members ...string) (int64, error) {
	m.mu.Lock()
	if m.sadds == nil {
		m.sadds = make(map[string][]string)
	}
	m.sadds[key] = append(m.sadds[key], members...)
	m.mu.Unlock()

	if m.saddFn != nil {
		return m.saddFn(ctx, key, members...)
	}
	return int64(len(members)), nil
}

func (m *mockStore) SMembers(ctx context.Context, key string) ([]string, error) {
	if m.smembersFn != nil {
		return m.smembersFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, keyspace.New("app:")), ms
}
