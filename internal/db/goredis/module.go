package goredis

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/kailas-cloud/dinedex/internal/db"
)

// JSONSet stores a JSON document at the given key and path.
func (s *Store) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if err := s.client.JSONSet(ctx, key, path, data).Err(); err != nil {
		return &db.Error{Op: db.OpJSONSet, Err: err}
	}
	return nil
}

// JSONGet retrieves a JSON document by key and optional paths.
func (s *Store) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	raw, err := s.client.JSONGet(ctx, key, paths...).Result()
	if err != nil {
		if isNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpJSONGet, Err: err}
	}
	if raw == "" {
		return nil, db.ErrKeyNotFound
	}
	return []byte(raw), nil
}

// BFReserve creates an empty bloom filter.
func (s *Store) BFReserve(ctx context.Context, key string, r db.BloomReservation) error {
	err := s.client.BFReserveWithArgs(ctx, key, &redis.BFReserveOptions{
		Error:      r.ErrorRate,
		Capacity:   r.Capacity,
		NonScaling: r.NonScaling,
	}).Err()
	if err != nil {
		return &db.Error{Op: db.OpBloomReserve, Err: err}
	}
	return nil
}

// BFExists reports whether item may have been added.
func (s *Store) BFExists(ctx context.Context, key, item string) (bool, error) {
	ok, err := s.client.BFExists(ctx, key, item).Result()
	if err != nil {
		return false, &db.Error{Op: db.OpBloomExists, Err: err}
	}
	return ok, nil
}

// BFAdd inserts item and reports whether it was new.
func (s *Store) BFAdd(ctx context.Context, key, item string) (bool, error) {
	added, err := s.client.BFAdd(ctx, key, item).Result()
	if err != nil {
		return false, &db.Error{Op: db.OpBloomAdd, Err: err}
	}
	return added, nil
}

// CreateIndex creates an FT index from the given definition.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	schema, err := fieldSchemas(def.Fields)
	if err != nil {
		return err
	}
	if err := s.client.FTCreate(ctx, def.Name, createOptions(def), schema...).Err(); err != nil {
		return db.IndexError(db.OpCreateIndex, serverReply(err), err)
	}
	return nil
}

// DropIndex removes an FT index by name. Indexed documents are kept.
func (s *Store) DropIndex(ctx context.Context, name string) error {
	if err := s.client.FTDropIndex(ctx, name).Err(); err != nil {
		return db.IndexError(db.OpDropIndex, serverReply(err), err)
	}
	return nil
}

// IndexExists looks the index up in FT._LIST.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	names, err := s.client.FT_List(ctx).Result()
	if err != nil {
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return slices.Contains(names, name), nil
}

// SearchList performs paginated search via FT.SEARCH.
func (s *Store) SearchList(
	ctx context.Context, index, query string, offset, limit int, fields []string,
) (*db.SearchResult, error) {
	opts := &redis.FTSearchOptions{LimitOffset: offset, Limit: limit}
	for _, f := range fields {
		opts.Return = append(opts.Return, redis.FTSearchReturn{FieldName: f})
	}

	res, err := s.client.FTSearchWithArgs(ctx, index, query, opts).Result()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	return toSearchResult(res), nil
}

func createOptions(def *db.IndexDefinition) *redis.FTCreateOptions {
	opts := &redis.FTCreateOptions{}
	if def.StorageType == db.StorageJSON {
		opts.OnJSON = true
	} else {
		opts.OnHash = true
	}
	for _, p := range def.Prefixes {
		opts.Prefix = append(opts.Prefix, p)
	}
	return opts
}

func fieldSchemas(fields []db.IndexField) ([]*redis.FieldSchema, error) {
	out := make([]*redis.FieldSchema, 0, len(fields))
	for i := range fields {
		f := &fields[i]
		fs := &redis.FieldSchema{
			FieldName: f.Name,
			As:        f.Alias,
			Sortable:  f.Sortable,
		}
		switch f.Type {
		case db.IndexFieldText:
			fs.FieldType = redis.SearchFieldTypeText
		case db.IndexFieldNumeric:
			fs.FieldType = redis.SearchFieldTypeNumeric
		case db.IndexFieldTag:
			fs.FieldType = redis.SearchFieldTypeTag
			fs.Separator = f.TagSeparator
			fs.CaseSensitive = f.TagCaseSensitive
		default:
			return nil, fmt.Errorf("field %q: %w", f.Name, errUnknownFieldType)
		}
		out = append(out, fs)
	}
	return out, nil
}

var errUnknownFieldType = errors.New("unknown field type")

func toSearchResult(res redis.FTSearchResult) *db.SearchResult {
	entries := make([]db.SearchEntry, 0, len(res.Docs))
	for _, doc := range res.Docs {
		entries = append(entries, db.SearchEntry{Key: doc.ID, Fields: doc.Fields})
	}
	return &db.SearchResult{Total: res.Total, Entries: entries}
}
