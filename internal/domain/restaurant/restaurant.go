// Package restaurant holds the restaurant aggregate and its rating math.
package restaurant

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Restaurant is the restaurant aggregate. Derived fields (views, stars, average)
// are maintained by the store and only ever hydrated through Reconstruct.
type Restaurant struct {
	id            string
	name          string
	location      string
	cuisines      []string
	viewCount     int64
	totalStars    float64
	averageRating float64
}

// New validates input for a freshly created restaurant.
// Cuisine names are trimmed and deduplicated, preserving first-seen order.
func New(id, name, location string, cuisines []string) (Restaurant, error) {
	if id == "" {
		return Restaurant{}, errors.New("restaurant ID is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Restaurant{}, errors.New("name is required")
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return Restaurant{}, errors.New("location is required")
	}

	cleaned, err := normalizeCuisines(cuisines)
	if err != nil {
		return Restaurant{}, err
	}

	return Restaurant{
		id:       id,
		name:     name,
		location: location,
		cuisines: cleaned,
	}, nil
}

// Reconstruct creates a Restaurant without validation (storage hydration).
func Reconstruct(
	id, name, location string, cuisines []string,
	viewCount int64, totalStars, averageRating float64,
) Restaurant {
	return Restaurant{
		id:            id,
		name:          name,
		location:      location,
		cuisines:      slices.Clone(cuisines),
		viewCount:     viewCount,
		totalStars:    totalStars,
		averageRating: averageRating,
	}
}

func normalizeCuisines(in []string) ([]string, error) {
	if len(in) == 0 {
		return nil, errors.New("at least one cuisine is required")
	}
	out := make([]string, 0, len(in))
	for i, c := range in {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, fmt.Errorf("cuisine at index %d is empty", i)
		}
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out, nil
}

// ID returns the restaurant identifier.
func (r Restaurant) ID() string { return r.id }

// Name returns the display name.
func (r Restaurant) Name() string { return r.name }

// Location returns the free-text location, conventionally "lat,lon".
func (r Restaurant) Location() string { return r.location }

// Cuisines returns a copy of the attached cuisine names.
func (r Restaurant) Cuisines() []string { return slices.Clone(r.cuisines) }

// ViewCount returns the number of uncached reads.
func (r Restaurant) ViewCount() int64 { return r.viewCount }

// TotalStars returns the running sum of review ratings.
func (r Restaurant) TotalStars() float64 { return r.totalStars }

// AverageRating returns the rounded average rating, 0 before the first review.
func (r Restaurant) AverageRating() float64 { return r.averageRating }

// Fingerprint returns the dedup fingerprint for this restaurant.
func (r Restaurant) Fingerprint() string { return Fingerprint(r.name, r.location) }

// WithCuisines returns a copy with the given cuisine list.
func (r Restaurant) WithCuisines(cuisines []string) Restaurant {
	r.cuisines = slices.Clone(cuisines)
	return r
}

// Fingerprint identifies a (name, location) pair for duplicate detection.
func Fingerprint(name, location string) string {
	return name + ":" + location
}

// AverageRating computes sum/count rounded to one decimal. A non-positive count yields 0.
func AverageRating(sum float64, count int64) float64 {
	if count <= 0 {
		return 0
	}
	return RoundRating(sum / float64(count))
}

// RoundRating rounds to one decimal place, halves away from zero.
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}
