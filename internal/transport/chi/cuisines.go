package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListCuisines handles GET /cuisines.
func (s *Server) ListCuisines(w http.ResponseWriter, r *http.Request) {
	names, err := s.cuisines.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeOK(w, "cuisines", names)
}

// CuisineRestaurants handles GET /cuisines/{cuisine}. An unknown cuisine yields an empty list.
func (s *Server) CuisineRestaurants(w http.ResponseWriter, r *http.Request) {
	rs, err := s.cuisines.Restaurants(r.Context(), chi.URLParam(r, "cuisine"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeOK(w, "restaurants serving "+chi.URLParam(r, "cuisine"), restaurantsToResponse(rs))
}
