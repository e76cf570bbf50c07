package restaurant

import (
	"errors"
	"fmt"
	"strconv"

	domrest "github.com/kailas-cloud/dinedex/internal/domain/restaurant"
)

// Hash field names, shared with the search index schema.
const (
	fieldID            = "id"
	fieldName          = "name"
	fieldLocation      = "location"
	fieldViewCount     = "viewCount"
	fieldTotalStars    = "totalStars"
	fieldAverageRating = "averageRating"
)

// restaurantToHash converts identity fields to a map for HSET.
func restaurantToHash(r domrest.Restaurant) map[string]string {
	return map[string]string{
		fieldID:       r.ID(),
		fieldName:     r.Name(),
		fieldLocation: r.Location(),
	}
}

// restaurantFromHash hydrates a Restaurant from an HGETALL result map.
// Absent counters read as zero.
func restaurantFromHash(m map[string]string) (domrest.Restaurant, error) {
	id := m[fieldID]
	if id == "" {
		return domrest.Restaurant{}, errors.New("restaurant hash without id")
	}

	var views int64
	if s := m[fieldViewCount]; s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return domrest.Restaurant{}, fmt.Errorf("invalid viewCount: %w", err)
		}
		views = v
	}
	stars, err := parseFloat(m[fieldTotalStars])
	if err != nil {
		return domrest.Restaurant{}, fmt.Errorf("invalid totalStars: %w", err)
	}
	avg, err := parseFloat(m[fieldAverageRating])
	if err != nil {
		return domrest.Restaurant{}, fmt.Errorf("invalid averageRating: %w", err)
	}

	return domrest.Reconstruct(id, m[fieldName], m[fieldLocation], nil, views, stars, avg), nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
