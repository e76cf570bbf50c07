package dedup

import (
	"context"
	"testing"

	"github.com/kailas-cloud/dinedex/internal/db"
	"github.com/kailas-cloud/dinedex/internal/keyspace"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	bfReserveFn func(ctx context.Context, key string, r db.BloomReservation) error
	bfExistsFn  func(ctx context.Context, key, item string) (bool, error)
	bfAddFn     func(ctx context.Context, key, item string) (bool, error)
	delFn       func(ctx context.Context, key string) (bool, error)
}

func (m *mockStore) BFReserve(ctx context.Context, key string, r db.BloomReservation) error {
	if m.bfReserveFn != nil {
		return m.bfReserveFn(ctx, key, r)
	}
	return nil
}

func (m *mockStore) BFExists(ctx context.Context, key, item string) (bool, error) {
	if m.bfExistsFn != nil {
		return m.bfExistsFn(ctx, key, item)
	}
	return false, nil
}

func (m *mockStore) BFAdd(ctx context.Context, key, item string) (bool, error) {
	if m.bfAddFn != nil {
		return m.bfAddFn(ctx, key, item)
	}
	return true, nil
}

func (m *mockStore) Del(ctx context.Context, key string) (bool, error) {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return false, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, keyspace.New("app:")), ms
}
