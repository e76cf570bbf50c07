package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AddReview handles POST /restaurants/{id}/reviews.
func (s *Server) AddReview(w http.ResponseWriter, r *http.Request) {
	var req addReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Rating == nil {
		writeError(w, http.StatusBadRequest, "rating is required")
		return
	}

	res, err := s.ratings.RecordReview(r.Context(), chi.URLParam(r, "id"), *req.Rating, req.Review)
	if err != nil {
		if msg, ok := partialIndexMessage("review added", err); ok {
			writeOK(w, msg, recordedToResponse(res))
			return
		}
		s.handleDomainError(w, r, err)
		return
	}
	writeOK(w, "review added", recordedToResponse(res))
}

// ListReviews handles GET /restaurants/{id}/reviews, newest first.
func (s *Server) ListReviews(w http.ResponseWriter, r *http.Request) {
	req, ok := pageFromQuery(w, r)
	if !ok {
		return
	}
	rvs, err := s.reviews.List(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeOK(w, "reviews", reviewsToResponse(rvs))
}

// GetReview handles GET /restaurants/{id}/reviews/{reviewId}.
func (s *Server) GetReview(w http.ResponseWriter, r *http.Request) {
	rv, err := s.reviews.Get(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "reviewId"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeOK(w, "review", reviewToResponse(rv))
}

// DeleteReview handles DELETE /restaurants/{id}/reviews/{reviewId}.
func (s *Server) DeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewId")
	out, err := s.reviews.Remove(r.Context(), chi.URLParam(r, "id"), reviewID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeOK(w, "review deleted", removeReviewResponse{ID: reviewID, Outcome: string(out)})
}
