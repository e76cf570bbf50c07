package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput signals a request that failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStoreUnavailable signals a failed call to the backing store.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrPartialIndex signals that the primary record was written but some derived structures were not.
	ErrPartialIndex = errors.New("partial index failure")

	// ErrRestaurantNotFound signals a missing restaurant.
	ErrRestaurantNotFound = fmt.Errorf("restaurant %w", ErrNotFound)
	// ErrDetailsNotFound signals a restaurant without a details document.
	ErrDetailsNotFound = fmt.Errorf("restaurant details %w", ErrNotFound)
	// ErrReviewNotFound signals a missing review.
	ErrReviewNotFound = fmt.Errorf("review %w", ErrNotFound)
)

// PartialIndexError lists the derived structures whose writes failed.
// The primary record exists; readers omit whatever is missing.
type PartialIndexError struct {
	Failed []string
	Err    error
}

func (e *PartialIndexError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrPartialIndex.Error(), strings.Join(e.Failed, ", "))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PartialIndexError) Unwrap() error { return ErrPartialIndex }

// NewPartialIndex creates a partial index error.
func NewPartialIndex(failed []string, cause error) error {
	return &PartialIndexError{Failed: failed, Err: cause}
}

// StoreFailure wraps a driver error as ErrStoreUnavailable, keeping the cause in the chain.
func StoreFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
