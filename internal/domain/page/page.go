// Package page converts 1-based page/limit requests into store ranges.
package page

// Request is a 1-based page request.
type Request struct {
	Number int
	Limit  int
}

// Normalize clamps the request: page < 1 becomes 1, limit <= 0 becomes
// defaultLimit, and limit above maxLimit is capped.
func (r Request) Normalize(defaultLimit, maxLimit int) Request {
	if r.Number < 1 {
		r.Number = 1
	}
	if r.Limit <= 0 {
		r.Limit = defaultLimit
	}
	if maxLimit > 0 && r.Limit > maxLimit {
		r.Limit = maxLimit
	}
	return r
}

// Offset returns the zero-based index of the first item.
func (r Request) Offset() int64 {
	return int64(r.Number-1) * int64(r.Limit)
}

// Stop returns the inclusive zero-based index of the last item, as used by LRANGE and ZRANGE.
func (r Request) Stop() int64 {
	return r.Offset() + int64(r.Limit) - 1
}
