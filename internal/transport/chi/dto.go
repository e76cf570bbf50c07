package chi

import (
	domrest "github.com/kailas-cloud/dinedex/internal/domain/restaurant"
	domreview "github.com/kailas-cloud/dinedex/internal/domain/review"
	ratinguc "github.com/kailas-cloud/dinedex/internal/usecase/rating"
)

// envelope wraps every JSON response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type createRestaurantRequest struct {
	Name     string   `json:"name"`
	Location string   `json:"location"`
	Cuisines []string `json:"cuisines"`
}

type addReviewRequest struct {
	Rating *float64 `json:"rating"`
	Review string   `json:"review"`
}

type restaurantResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	Cuisines      []string `json:"cuisines"`
	ViewCount     int64    `json:"viewCount"`
	TotalStars    float64  `json:"totalStars"`
	AverageRating float64  `json:"averageRating"`
}

type reviewResponse struct {
	ID           string  `json:"id"`
	RestaurantID string  `json:"restaurantId"`
	Rating       float64 `json:"rating"`
	Review       string  `json:"review"`
	Timestamp    int64   `json:"timestamp"`
}

type recordedReviewResponse struct {
	Review        reviewResponse `json:"review"`
	ReviewCount   int64          `json:"reviewCount"`
	AverageRating float64        `json:"averageRating"`
}

type removeReviewResponse struct {
	ID      string `json:"id"`
	Outcome string `json:"outcome"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func restaurantToResponse(r domrest.Restaurant) restaurantResponse {
	cuisines := r.Cuisines()
	if cuisines == nil {
		cuisines = []string{}
	}
	return restaurantResponse{
		ID:            r.ID(),
		Name:          r.Name(),
		Location:      r.Location(),
		Cuisines:      cuisines,
		ViewCount:     r.ViewCount(),
		TotalStars:    r.TotalStars(),
		AverageRating: r.AverageRating(),
	}
}

func restaurantsToResponse(rs []domrest.Restaurant) []restaurantResponse {
	out := make([]restaurantResponse, len(rs))
	for i, r := range rs {
		out[i] = restaurantToResponse(r)
	}
	return out
}

func reviewToResponse(rv domreview.Review) reviewResponse {
	return reviewResponse{
		ID:           rv.ID(),
		RestaurantID: rv.RestaurantID(),
		Rating:       rv.Rating(),
		Review:       rv.Text(),
		Timestamp:    rv.Timestamp(),
	}
}

func reviewsToResponse(rvs []domreview.Review) []reviewResponse {
	out := make([]reviewResponse, len(rvs))
	for i, rv := range rvs {
		out[i] = reviewToResponse(rv)
	}
	return out
}

func recordedToResponse(res ratinguc.Result) recordedReviewResponse {
	return recordedReviewResponse{
		Review:        reviewToResponse(res.Review),
		ReviewCount:   res.Count,
		AverageRating: res.AverageRating,
	}
}
