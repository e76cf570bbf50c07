package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade by design -- consumers use narrow sub-interfaces (ISP)
type Store interface {
	Pinger
	HashStore
	SetStore
	SortedSetStore
	ListStore
	KVStore
	JSONStore
	BloomStore
	IndexManager
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KeyStore holds operations that apply to any key type.
type KeyStore interface {
	// Del removes a key and reports whether it existed.
	Del(ctx context.Context, key string) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	KeyStore
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error)
	HIncrByFloat(ctx context.Context, key, field string, delta float64) (float64, error)
}

// SetStore provides unordered set operations.
type SetStore interface {
	SAdd(ctx context.Context, key string, members ...string) (int64, error)
	SRem(ctx context.Context, key string, members ...string) (int64, error)
	SMembers(ctx context.Context, key string) ([]string, error)
}

// SortedSetStore provides sorted-set operations.
type SortedSetStore interface {
	ZAdd(ctx context.Context, key string, score float64, member string) error
	// ZRevRange returns members between start and stop ranks (inclusive), highest score first.
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	// ZScore returns ErrKeyNotFound when the member is absent.
	ZScore(ctx context.Context, key, member string) (float64, error)
}

// ListStore provides list operations.
type ListStore interface {
	// LPush prepends values and returns the new list length.
	LPush(ctx context.Context, key string, values ...string) (int64, error)
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	// LRem removes up to count occurrences of value and returns how many were removed.
	LRem(ctx context.Context, key string, count int64, value string) (int64, error)
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// JSONStore provides JSON document operations.
type JSONStore interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
}

// BloomReservation holds BF.RESERVE parameters.
type BloomReservation struct {
	ErrorRate  float64
	Capacity   int64
	NonScaling bool
}

// BloomStore provides probabilistic membership operations.
type BloomStore interface {
	BFReserve(ctx context.Context, key string, r BloomReservation) error
	BFExists(ctx context.Context, key, item string) (bool, error)
	// BFAdd returns true if the item was newly added.
	BFAdd(ctx context.Context, key, item string) (bool, error)
}

// IndexManager provides FT index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Searcher provides search operations over FT indexes.
type Searcher interface {
	SearchList(ctx context.Context, index, query string, offset, limit int, fields []string) (*SearchResult, error)
}
