// Package dbtest provides an in-memory db.Store for service and transport tests.
//
// It covers every command the directory issues. Bloom filters are exact sets,
// JSON documents are stored verbatim and FT.SEARCH understands "*" and
// "@field:(terms)" queries over indexed hashes.
package dbtest

import (
	"context"
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kailas-cloud/dinedex/internal/db"
)

var _ db.Store = (*Store)(nil)

// OpPing names Ping for FailOn; the drivers report ping failures without a db.Error.
const OpPing = "PING"

type zmember struct {
	member string
	score  float64
}

type kvEntry struct {
	value   []byte
	expires time.Time // zero means no expiry
}

// Store is a goroutine-safe in-memory store.
type Store struct {
	mu sync.Mutex

	hashes  map[string]map[string]string
	sets    map[string]map[string]struct{}
	zsets   map[string]map[string]float64
	lists   map[string][]string
	kv      map[string]kvEntry
	docs    map[string][]byte
	blooms  map[string]map[string]struct{}
	indexes map[string]*db.IndexDefinition

	now    time.Time
	faults map[string]error
	calls  map[string]int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		hashes:  map[string]map[string]string{},
		sets:    map[string]map[string]struct{}{},
		zsets:   map[string]map[string]float64{},
		lists:   map[string][]string{},
		kv:      map[string]kvEntry{},
		docs:    map[string][]byte{},
		blooms:  map[string]map[string]struct{}{},
		indexes: map[string]*db.IndexDefinition{},
		now:     time.Unix(1_700_000_000, 0),
		faults:  map[string]error{},
		calls:   map[string]int{},
	}
}

// FailOn makes every call of op (a db.Op* constant) return err wrapped in *db.Error.
// A nil err clears the fault.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.faults, op)
		return
	}
	s.faults[op] = err
}

// Calls returns how many times op was invoked.
func (s *Store) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// Advance moves the store clock forward, expiring keys whose TTL has passed.
func (s *Store) Advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(d)
}

// enter locks the store and records the call. Callers must unlock.
func (s *Store) enter(op string) error {
	s.mu.Lock()
	s.calls[op]++
	if err := s.faults[op]; err != nil {
		return &db.Error{Op: op, Err: err}
	}
	return nil
}

// Ping succeeds unless an OpPing fault is set.
func (s *Store) Ping(_ context.Context) error {
	defer s.mu.Unlock()
	return s.enter(OpPing)
}

// Close is a no-op.
func (s *Store) Close() {}

// WaitForReady returns Ping's result.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

// --- keys ---

func (s *Store) exists(key string) bool {
	if _, ok := s.hashes[key]; ok {
		return true
	}
	if _, ok := s.sets[key]; ok {
		return true
	}
	if _, ok := s.zsets[key]; ok {
		return true
	}
	if _, ok := s.lists[key]; ok {
		return true
	}
	if _, ok := s.docs[key]; ok {
		return true
	}
	if _, ok := s.blooms[key]; ok {
		return true
	}
	e, ok := s.kv[key]
	return ok && s.alive(e)
}

func (s *Store) alive(e kvEntry) bool {
	return e.expires.IsZero() || s.now.Before(e.expires)
}

// Del removes a key of any type.
func (s *Store) Del(_ context.Context, key string) (bool, error) {
	defer s.mu.Unlock()
	if err := s.enter(db.OpDel); err != nil {
		return false, err
	}
	existed := s.exists(key)
	delete(s.hashes, key)
	delete(s.sets, key)
	delete(s.zsets, key)
	delete(s.lists, key)
	delete(s.kv, key)
	delete(s.docs, key)
	delete(s.blooms, key)
	return existed, nil
}

// Exists reports whether a key of any type is present.
func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	defer s.mu.Unlock()
	if err := s.enter(db.OpExists); err != nil {
		return false, err
	}
	return s.exists(key), nil
}

// Scan returns every key matching a glob pattern, sorted.
func (s *Store) Scan(_ context.Context, pattern string) ([]string, error) {
	defer s.mu.Unlock()
	if err := s.enter(db.OpScan); err != nil {
		return nil, err
	}
	var out []string
	collect := func(key string) {
		if ok, _ := path.Match(pattern, key); ok && !slices.Contains(out, key) {
			out = append(out, key)
		}
	}
	for k := range s.hashes {
		collect(k)
	}
	for k := range s.sets {
		collect(k)
	}
	for k := range s.zsets {
		collect(k)
	}
	for k := range s.lists {
		collect(k)
	}
	for k, e := range s.kv {
		if s.alive(e) {
			collect(k)
		}
	}
	for k := range s.docs {
		collect(k)
	}
	slices.Sort(out)
	return out, nil
}

// --- hashes ---

// HSet writes hash fields.
func (s *Store) HSet(_ context.Context, key string, fields map[string]string) error {
	defer s.mu.Unlock()
	if err := s.enter(db.OpHSet); err != nil {
		return err
	}
	h := s.hashes[key]
	if h == nil {
		h = map[string]string{}
		s.hashes[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

// HGetAll returns a copy of the hash, empty when absent.
func (s *Store) HGetAll(_ context.Context, key string) (map[string]string, error) {
	defer s.mu.Unlock()
	if err := s.enter(db.OpHGetAll); err != nil {
		return nil, err
	}
	return s.hgetall(key), nil
}

func (s *Store) hgetall(key string) map[string]string {
	out := make(map[string]string, len(s.hashes[key]))
	for k, v := range s.hashes[key] {
		out[k] = v
	}
	return out
}

// HGetAllMulti returns one map per key, in order.
func (s *Store) HGetAllMulti(_ context.Context, keys []string) ([]map[string]string, error) {
	defer s.mu.Unlock()
	if err := s.enter(db.OpHGetAll); err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		out[i] = s.hgetall(k)
	}
	return out, nil
}

// HIncrBy increments an integer hash field, creating hash and field as needed.
func (s *Store) HIncrBy(_ context.Context, key, field string, delta int64) (int64, error) {
	defer s.mu.Unlock()
	if err := s.enter(db.OpHIncrBy); err != nil {
		return 0, err
	}
	h := s.hashes[key]
	if h == nil {
		h = map[string]string{}
		s.hashes[key] = h
	}
	var cur int64
	if v := h[field]; v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, &db.Error{Op: db.OpHIncrBy, Err: fmt.Errorf("hash value is not an integer")}
		}
		cur = n
	}
	cur += delta
	h[field] = strconv.FormatInt(cur, 10)
	return cur, nil
}

// HIncrByFloat increments a float hash field.
func (s *Store) HIncrByFloat(_ context.Context, key, field string, delta float64) (float64, error) {
	defer s.mu.Unlock()
	if err := s.enter(db.OpHIncrByFloat); err != nil {
		return 0, err
	}
	h := s.hashes[key]
	if h == nil {
		h = map[string]string{}
		s.hashes[key] = h
	}
	var cur float64
	if v := h[field]; v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, &db.Error{Op: db.OpHIncrByFloat, Err: fmt.Errorf("hash value is not a float")}
		}
		cur = f
	}
	cur += delta
	h[field] = strconv.FormatFloat(cur, 'f', -1, 64)
	return cur, nil
}

// --- sets ---

// SAdd adds members and returns how many were new.
func (s *Store) SAdd(_ context.Context, key string, members ...string) (int64, error) {
	defer s.mu.Unlock()
	if err := s.enter(db.OpSAdd); err != nil {
		return 0, err
	}
	set := s.sets[key]
	if set == nil {
		set = map[string]struct{}{}
		s.sets[key] = set
	}
	var added int64
	for _, m := range members {
		if _, ok := set[m]; !ok {
			set[m] = struct{}{}
			added++
		}
	}
	return added, nil
}

// SRem removes members; an emptied set is deleted.
func (s *Store) SRem(_ context.Context, key string, members ...string) (int64, error) {
	defer s.mu.Unlock()
	if err := s.enter(db.OpSRem); err != nil {
		return 0, err
	}
	set := s.sets[key]
	var removed int64
	for _, m := range members {
		if _, ok := set[m]; ok {
			delete(set, m)
			removed++
		}
	}
	if set != nil && len(set) == 0 {
		delete(s.sets, key)
	}
	return removed, nil
}

// SMembers returns set members, sorted.
func (s *Store) SMembers(_ context.Context, key string) ([]string, error) {
	defer s.mu.Unlock()
	if err := s.enter(db.OpSMembers); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(s.sets[key]))
	for m := range s.sets[key] {
		out = append(out, m)
	}
	slices.Sort(out)
	return out, nil
}

// --- sorted sets ---

// ZAdd sets a member's score.
func (s *Store) ZAdd(_ context.Context, key string, score float64, member string) error {
	defer s.mu.Unlock()
	if err := s.enter(db.OpZAdd); err != nil {
		return err
	}
	z := s.zsets[key]
	if z == nil {
		z = map[string]float64{}
		s.zsets[key] = z
	}
	z[member] = score
	return nil
}

// ZRevRange returns members by descending score; ties order by descending member, as Redis does.
func (s *Store) ZRevRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	defer s.mu.Unlock()
	if err := s.enter(db.OpZRange); err != nil {
		return nil, err
	}
	members := make([]zmember, 0, len(s.zsets[key]))
	for m, sc := range s.zsets[key] {
		members = append(members, zmember{member: m, score: sc})
	}
	slices.SortFunc(members, func(a, b zmember) int {
		if a.score != b.score {
			if a.score > b.score {
				return -1
			}
			return 1
		}
		return strings.Compare(b.member, a.member)
	})
	lo, hi, ok := clampRange(start, stop, len(members))
	if !ok {
		return []string{}, nil
	}
	out := make([]string, 0, hi-lo+1)
	for _, m := range members[lo : hi+1] {
		out = append(out, m.member)
	}
	return out, nil
}

// ZScore returns db.ErrKeyNotFound when the member is absent.
func (s *Store) ZScore(_ context.Context, key, member string) (float64, error) {
	defer s.mu.Unlock()
	if err := s.enter(db.OpZScore); err != nil {
		return 0, err
	}
	sc, ok := s.zsets[key][member]
	if !ok {
		return 0, db.ErrKeyNotFound
	}
	return sc, nil
}

// --- lists ---

// LPush prepends values one by one, like Redis.
func (s *Store) LPush(_ context.Context, key string, values ...string) (int64, error) {
	defer s.mu.Unlock()
	if err := s.enter(db.OpLPush); err != nil {
		return 0, err
	}
	for _, v := range values {
		s.lists[key] = append([]string{v}, s.lists[key]...)
	}
	return int64(len(s.lists[key])), nil
}

// LRange returns elements start..stop inclusive; negative indexes count from the tail.
func (s *Store) LRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	defer s.mu.Unlock()
	if err := s.enter(db.OpLRange); err != nil {
		return nil, err
	}
	l := s.lists[key]
	lo, hi, ok := clampRange(start, stop, len(l))
	if !ok {
		return []string{}, nil
	}
	return slices.Clone(l[lo : hi+1]), nil
}

// LRem removes up to count occurrences from the head (count > 0) or all (count == 0).
func (s *Store) LRem(_ context.Context, key string, count int64, value string) (int64, error) {
	defer s.mu.Unlock()
	if err := s.enter(db.OpLRem); err != nil {
		return 0, err
	}
	l := s.lists[key]
	var removed int64
	out := l[:0:0]
	for _, v := range l {
		if v == value && (count <= 0 || removed < count) {
			removed++
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		delete(s.lists, key)
	} else {
		s.lists[key] = out
	}
	return removed, nil
}

// --- strings ---

// Get returns db.ErrKeyNotFound for missing or expired keys.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	defer s.mu.Unlock()
	if err := s.enter(db.OpGet); err != nil {
		return nil, err
	}
	e, ok := s.kv[key]
	if !ok || !s.alive(e) {
		delete(s.kv, key)
		return nil, db.ErrKeyNotFound
	}
	return slices.Clone(e.value), nil
}

// Set stores a value without expiry.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	defer s.mu.Unlock()
	if err := s.enter(db.OpSet); err != nil {
		return err
	}
	s.kv[key] = kvEntry{value: slices.Clone(value)}
	return nil
}

// SetWithTTL stores a value that expires after ttl on the store clock.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	defer s.mu.Unlock()
	if err := s.enter(db.OpSet); err != nil {
		return err
	}
	s.kv[key] = kvEntry{value: slices.Clone(value), expires: s.now.Add(ttl)}
	return nil
}

// --- documents ---

// JSONSet stores the document. Only the root path is supported.
func (s *Store) JSONSet(_ context.Context, key, p string, data []byte) error {
	defer s.mu.Unlock()
	if err := s.enter(db.OpJSONSet); err != nil {
		return err
	}
	if p != "$" && p != "." {
		return &db.Error{Op: db.OpJSONSet, Err: fmt.Errorf("path %q not supported", p)}
	}
	s.docs[key] = slices.Clone(data)
	return nil
}

// JSONGet returns the whole document; paths are ignored.
func (s *Store) JSONGet(_ context.Context, key string, _ ...string) ([]byte, error) {
	defer s.mu.Unlock()
	if err := s.enter(db.OpJSONGet); err != nil {
		return nil, err
	}
	d, ok := s.docs[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return slices.Clone(d), nil
}

// --- bloom ---

// BFReserve creates an empty filter; it fails if the key exists.
func (s *Store) BFReserve(_ context.Context, key string, _ db.BloomReservation) error {
	defer s.mu.Unlock()
	if err := s.enter(db.OpBloomReserve); err != nil {
		return err
	}
	if s.exists(key) {
		return &db.Error{Op: db.OpBloomReserve, Err: fmt.Errorf("item exists")}
	}
	s.blooms[key] = map[string]struct{}{}
	return nil
}

// BFExists reports exact membership.
func (s *Store) BFExists(_ context.Context, key, item string) (bool, error) {
	defer s.mu.Unlock()
	if err := s.enter(db.OpBloomExists); err != nil {
		return false, err
	}
	_, ok := s.blooms[key][item]
	return ok, nil
}

// BFAdd inserts item, creating the filter when missing.
func (s *Store) BFAdd(_ context.Context, key, item string) (bool, error) {
	defer s.mu.Unlock()
	if err := s.enter(db.OpBloomAdd); err != nil {
		return false, err
	}
	f := s.blooms[key]
	if f == nil {
		f = map[string]struct{}{}
		s.blooms[key] = f
	}
	if _, ok := f[item]; ok {
		return false, nil
	}
	f[item] = struct{}{}
	return true, nil
}

// --- search ---

// CreateIndex registers a HASH index definition.
func (s *Store) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	defer s.mu.Unlock()
	if err := s.enter(db.OpCreateIndex); err != nil {
		return err
	}
	if err := def.Validate(); err != nil {
		return err
	}
	if _, ok := s.indexes[def.Name]; ok {
		return db.ErrIndexExists
	}
	s.indexes[def.Name] = def
	return nil
}

// DropIndex removes an index definition.
func (s *Store) DropIndex(_ context.Context, name string) error {
	defer s.mu.Unlock()
	if err := s.enter(db.OpDropIndex); err != nil {
		return err
	}
	if _, ok := s.indexes[name]; !ok {
		return db.ErrIndexNotFound
	}
	delete(s.indexes, name)
	return nil
}

// IndexExists reports whether an index is registered.
func (s *Store) IndexExists(_ context.Context, name string) (bool, error) {
	defer s.mu.Unlock()
	if err := s.enter(db.OpIndexInfo); err != nil {
		return false, err
	}
	_, ok := s.indexes[name]
	return ok, nil
}

// SearchList matches "*" or "@field:(terms)" against hashes under the index prefixes.
// A hash matches when every term occurs as a word of the field, case-insensitively.
func (s *Store) SearchList(
	_ context.Context, index, query string, offset, limit int, fields []string,
) (*db.SearchResult, error) {
	defer s.mu.Unlock()
	if err := s.enter(db.OpSearch); err != nil {
		return nil, err
	}
	def, ok := s.indexes[index]
	if !ok {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("%s: no such index", index)}
	}

	field, terms, err := parseQuery(query)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	var keys []string
	for key, h := range s.hashes {
		if !hasAnyPrefix(key, def.Prefixes) {
			continue
		}
		if field != "" && !containsTerms(h[field], terms) {
			continue
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)

	res := &db.SearchResult{Total: len(keys)}
	if offset >= len(keys) {
		return res, nil
	}
	end := min(offset+limit, len(keys))
	for _, key := range keys[offset:end] {
		h := s.hgetall(key)
		if len(fields) > 0 {
			picked := make(map[string]string, len(fields))
			for _, f := range fields {
				if v, ok := h[f]; ok {
					picked[f] = v
				}
			}
			h = picked
		}
		res.Entries = append(res.Entries, db.SearchEntry{Key: key, Fields: h})
	}
	return res, nil
}

func parseQuery(q string) (field string, terms []string, err error) {
	if q == "*" {
		return "", nil, nil
	}
	rest, ok := strings.CutPrefix(q, "@")
	if !ok {
		return "", nil, fmt.Errorf("unsupported query %q", q)
	}
	field, body, ok := strings.Cut(rest, ":(")
	if !ok || !strings.HasSuffix(body, ")") {
		return "", nil, fmt.Errorf("unsupported query %q", q)
	}
	body = strings.TrimSuffix(body, ")")
	for _, w := range strings.Fields(body) {
		terms = append(terms, strings.ToLower(w))
	}
	return field, terms, nil
}

func unescape(s string) string {
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

// containsTerms matches every raw query term against the words of value.
// An unescaped trailing '*' makes the term a prefix match.
func containsTerms(value string, terms []string) bool {
	words := strings.Fields(strings.ToLower(value))
	for _, raw := range terms {
		stem, prefix := strings.CutSuffix(raw, "*")
		if prefix && strings.HasSuffix(stem, `\`) && !strings.HasSuffix(stem, `\\`) {
			prefix = false
		}
		if !prefix {
			stem = raw
		}
		stem = unescape(stem)
		matched := slices.ContainsFunc(words, func(w string) bool {
			if prefix {
				return strings.HasPrefix(w, stem)
			}
			return w == stem
		})
		if !matched {
			return false
		}
	}
	return true
}

func hasAnyPrefix(key string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

// clampRange resolves Redis-style inclusive indexes against n elements.
func clampRange(start, stop int64, n int) (lo, hi int, ok bool) {
	size := int64(n)
	if start < 0 {
		start += size
	}
	if stop < 0 {
		stop += size
	}
	start = max(start, 0)
	if stop >= size {
		stop = size - 1
	}
	if start > stop || start >= size {
		return 0, 0, false
	}
	return int(start), int(stop), true
}
