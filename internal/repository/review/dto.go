package review

import (
	"errors"
	"fmt"
	"strconv"

	domreview "github.com/kailas-cloud/dinedex/internal/domain/review"
)

const (
	fieldID           = "id"
	fieldRestaurantID = "restaurantId"
	fieldRating       = "rating"
	fieldText         = "review"
	fieldTimestamp    = "timestamp"
)

func reviewToHash(rv domreview.Review) map[string]string {
	return map[string]string{
		fieldID:           rv.ID(),
		fieldRestaurantID: rv.RestaurantID(),
		fieldRating:       strconv.FormatFloat(rv.Rating(), 'f', -1, 64),
		fieldText:         rv.Text(),
		fieldTimestamp:    strconv.FormatInt(rv.Timestamp(), 10),
	}
}

func reviewFromHash(m map[string]string) (domreview.Review, error) {
	id := m[fieldID]
	if id == "" {
		return domreview.Review{}, errors.New("review hash without id")
	}
	rating, err := strconv.ParseFloat(m[fieldRating], 64)
	if err != nil {
		return domreview.Review{}, fmt.Errorf("invalid rating: %w", err)
	}
	var ts int64
	if s := m[fieldTimestamp]; s != "" {
		ts, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return domreview.Review{}, fmt.Errorf("invalid timestamp: %w", err)
		}
	}
	return domreview.Reconstruct(id, m[fieldRestaurantID], rating, m[fieldText], ts), nil
}
