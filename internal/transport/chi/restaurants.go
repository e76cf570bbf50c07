package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/dinedex/internal/domain/page"
)

// CreateRestaurant handles POST /restaurants.
func (s *Server) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req createRestaurantRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rest, err := s.restaurants.Create(r.Context(), req.Name, req.Location, req.Cuisines)
	if err != nil {
		if msg, ok := partialIndexMessage("restaurant created", err); ok {
			writeOK(w, msg, restaurantToResponse(rest))
			return
		}
		s.handleDomainError(w, r, err)
		return
	}
	writeOK(w, "restaurant created", restaurantToResponse(rest))
}

// TopRestaurants handles GET /restaurants, best rated first.
func (s *Server) TopRestaurants(w http.ResponseWriter, r *http.Request) {
	req, ok := pageFromQuery(w, r)
	if !ok {
		return
	}
	rs, err := s.restaurants.Top(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeOK(w, "top restaurants", restaurantsToResponse(rs))
}

// SearchRestaurants handles GET /restaurants/search?q=.
func (s *Server) SearchRestaurants(w http.ResponseWriter, r *http.Request) {
	limit, ok := intQuery(w, r, "limit")
	if !ok {
		return
	}
	rs, err := s.restaurants.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeOK(w, "search results", restaurantsToResponse(rs))
}

// GetRestaurant handles GET /restaurants/{id}.
func (s *Server) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := s.restaurants.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeOK(w, "restaurant", restaurantToResponse(rest))
}

// SetDetails handles POST /restaurants/{id}/details. The body is stored as is.
func (s *Server) SetDetails(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	d, err := s.restaurants.SetDetails(r.Context(), chi.URLParam(r, "id"), raw)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeOK(w, "details saved", d)
}

// GetDetails handles GET /restaurants/{id}/details.
func (s *Server) GetDetails(w http.ResponseWriter, r *http.Request) {
	d, err := s.restaurants.GetDetails(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeOK(w, "details", d)
}

// decodeBody decodes a JSON request body into v, writing 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		msg := "invalid request body"
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
			msg += ": " + err.Error()
		case errors.Is(err, io.EOF):
			msg += ": empty body"
		}
		writeError(w, http.StatusBadRequest, msg)
		return false
	}
	return true
}

// pageFromQuery reads page and limit. Absent values are left at zero for the service defaults.
func pageFromQuery(w http.ResponseWriter, r *http.Request) (page.Request, bool) {
	number, ok := intQuery(w, r, "page")
	if !ok {
		return page.Request{}, false
	}
	limit, ok := intQuery(w, r, "limit")
	if !ok {
		return page.Request{}, false
	}
	return page.Request{Number: number, Limit: limit}, true
}

func intQuery(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, name+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}
