// Package review holds the review value object.
package review

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a single rating plus free text, immutable once written.
type Review struct {
	id           string
	restaurantID string
	rating       float64
	text         string
	timestamp    int64 // unix millis
}

// New validates and creates a Review stamped with the given instant.
func New(id, restaurantID string, rating float64, text string, at time.Time) (Review, error) {
	if id == "" {
		return Review{}, errors.New("review ID is required")
	}
	if restaurantID == "" {
		return Review{}, errors.New("restaurant ID is required")
	}
	if err := ValidateRating(rating); err != nil {
		return Review{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Review{}, errors.New("review text is required")
	}
	return Review{
		id:           id,
		restaurantID: restaurantID,
		rating:       rating,
		text:         text,
		timestamp:    at.UnixMilli(),
	}, nil
}

// ValidateRating checks the rating range. NaN is rejected: the store refuses it
// for the running sum after the review is already counted.
func ValidateRating(rating float64) error {
	if math.IsNaN(rating) || rating < MinRating || rating > MaxRating {
		return fmt.Errorf("rating must be between %d and %d", MinRating, MaxRating)
	}
	return nil
}

// Reconstruct creates a Review without validation (storage hydration).
func Reconstruct(id, restaurantID string, rating float64, text string, timestamp int64) Review {
	return Review{
		id:           id,
		restaurantID: restaurantID,
		rating:       rating,
		text:         text,
		timestamp:    timestamp,
	}
}

// ID returns the review identifier.
func (r Review) ID() string { return r.id }

// RestaurantID returns the reviewed restaurant.
func (r Review) RestaurantID() string { return r.restaurantID }

// Rating returns the numeric rating.
func (r Review) Rating() float64 { return r.rating }

// Text returns the review body.
func (r Review) Text() string { return r.text }

// Timestamp returns the creation instant in unix milliseconds.
func (r Review) Timestamp() int64 { return r.timestamp }

// RemoveOutcome describes what a delete actually touched.
type RemoveOutcome string

const (
	// Removed means both the list entry and the record were deleted.
	Removed RemoveOutcome = "removed"
	// Partial means only one of the list entry or the record existed.
	Partial RemoveOutcome = "partial"
)
