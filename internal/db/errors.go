package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound   = errors.New("db: key not found")
	ErrIndexNotFound = errors.New("db: index not found")
	ErrIndexExists   = errors.New("db: index already exists")
)

// Op constants map to Redis command names for error context.
const (
	OpCreateIndex  = "FT.CREATE"
	OpDropIndex    = "FT.DROPINDEX"
	OpIndexInfo    = "FT.INFO"
	OpSearch       = "FT.SEARCH"
	OpDel          = "DEL"
	OpHGetAll      = "HGETALL"
	OpHSet         = "HSET"
	OpHIncrBy      = "HINCRBY"
	OpHIncrByFloat = "HINCRBYFLOAT"
	OpSAdd         = "SADD"
	OpSRem         = "SREM"
	OpSMembers     = "SMEMBERS"
	OpZAdd         = "ZADD"
	OpZRange       = "ZRANGE"
	OpZScore       = "ZSCORE"
	OpLPush        = "LPUSH"
	OpLRange       = "LRANGE"
	OpLRem         = "LREM"
	OpExists       = "EXISTS"
	OpScan         = "SCAN"
	OpGet          = "GET"
	OpSet          = "SET"
	OpJSONSet      = "JSON.SET"
	OpJSONGet      = "JSON.GET"
	OpBloomReserve = "BF.RESERVE"
	OpBloomExists  = "BF.EXISTS"
	OpBloomAdd     = "BF.ADD"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// IsStoreError reports whether err came from a failed store command.
func IsStoreError(err error) bool {
	var dbErr *Error
	return errors.As(err, &dbErr)
}
