package dinedex

import (
	"encoding/json"

	domrest "github.com/kailas-cloud/dinedex/internal/domain/restaurant"
	domreview "github.com/kailas-cloud/dinedex/internal/domain/review"
)

// Restaurant is a directory entry with its derived counters.
type Restaurant struct {
	ID            string
	Name          string
	Location      string
	Cuisines      []string
	ViewCount     int64
	TotalStars    float64
	AverageRating float64
}

// Review is one rating with its text. Timestamp is unix milliseconds.
type Review struct {
	ID           string
	RestaurantID string
	Rating       float64
	Text         string
	Timestamp    int64
}

// RecordedReview is the outcome of adding a review.
type RecordedReview struct {
	Review        Review
	ReviewCount   int64
	AverageRating float64
}

// RemoveOutcome tells what a review deletion touched.
type RemoveOutcome string

// Remove outcomes.
const (
	Removed        RemoveOutcome = "removed"
	PartialRemoval RemoveOutcome = "partial"
)

func fromInternalRestaurant(r domrest.Restaurant) Restaurant {
	return Restaurant{
		ID:            r.ID(),
		Name:          r.Name(),
		Location:      r.Location(),
		Cuisines:      r.Cuisines(),
		ViewCount:     r.ViewCount(),
		TotalStars:    r.TotalStars(),
		AverageRating: r.AverageRating(),
	}
}

func fromInternalRestaurants(rs []domrest.Restaurant) []Restaurant {
	out := make([]Restaurant, len(rs))
	for i, r := range rs {
		out[i] = fromInternalRestaurant(r)
	}
	return out
}

func fromInternalReview(rv domreview.Review) Review {
	return Review{
		ID:           rv.ID(),
		RestaurantID: rv.RestaurantID(),
		Rating:       rv.Rating(),
		Text:         rv.Text(),
		Timestamp:    rv.Timestamp(),
	}
}

func fromInternalReviews(rvs []domreview.Review) []Review {
	out := make([]Review, len(rvs))
	for i, rv := range rvs {
		out[i] = fromInternalReview(rv)
	}
	return out
}

func fromInternalDetails(d domrest.Details) json.RawMessage {
	return json.RawMessage(d.Raw())
}
