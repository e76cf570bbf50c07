package dinedex

import "github.com/kailas-cloud/dinedex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound           = domain.ErrNotFound
	ErrRestaurantNotFound = domain.ErrRestaurantNotFound
	ErrDetailsNotFound    = domain.ErrDetailsNotFound
	ErrReviewNotFound     = domain.ErrReviewNotFound
	ErrAlreadyExists      = domain.ErrAlreadyExists
	ErrInvalidInput       = domain.ErrInvalidInput
	ErrStoreUnavailable   = domain.ErrStoreUnavailable
	ErrPartialIndex       = domain.ErrPartialIndex
)

// PartialIndexError names the derived structures a write could not update.
// Use errors.As to inspect it.
type PartialIndexError = domain.PartialIndexError
