package review

import (
	"context"
	"slices"
	"sync"
	"testing"

	"github.com/kailas-cloud/dinedex/internal/keyspace"
)

// memStore is a small in-memory list+hash store; Append and Remove
// call it from concurrent goroutines.
type memStore struct {
	mu     sync.Mutex
	lists  map[string][]string
	hashes map[string]map[string]string

	lpushErr error
	hsetErr  error
	delErr   error
}

func newMemStore() *memStore {
	return &memStore{lists: map[string][]string{}, hashes: map[string]map[string]string{}}
}

func (m *memStore) LPush(_ context.Context, key string, values ...string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lpushErr != nil {
		return 0, m.lpushErr
	}
	for _, v := range values {
		m.lists[key] = append([]string{v}, m.lists[key]...)
	}
	return int64(len(m.lists[key])), nil
}

func (m *memStore) LRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := m.lists[key]
	n := int64(len(l))
	if start >= n {
		return []string{}, nil
	}
	if stop >= n {
		stop = n - 1
	}
	return slices.Clone(l[start : stop+1]), nil
}

func (m *memStore) LRem(_ context.Context, key string, _ int64, value string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := m.lists[key]
	i := slices.Index(l, value)
	if i < 0 {
		return 0, nil
	}
	m.lists[key] = slices.Delete(l, i, i+1)
	return 1, nil
}

func (m *memStore) HSet(_ context.Context, key string, fields map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hsetErr != nil {
		return m.hsetErr
	}
	h := m.hashes[key]
	if h == nil {
		h = map[string]string{}
		m.hashes[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

func (m *memStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]string{}
	for k, v := range m.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		out[i], _ = m.HGetAll(ctx, k)
	}
	return out, nil
}

func (m *memStore) Del(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.delErr != nil {
		return false, m.delErr
	}
	_, ok := m.hashes[key]
	delete(m.hashes, key)
	return ok, nil
}

func newTestRepo(t *testing.T) (*Repo, *memStore) {
	t.Helper()
	ms := newMemStore()
	return New(ms, keyspace.New("app:")), ms
}
