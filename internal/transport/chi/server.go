package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dinedex/internal/domain"
	logpkg "github.com/kailas-cloud/dinedex/internal/logger"
	cuisineuc "github.com/kailas-cloud/dinedex/internal/usecase/cuisine"
	healthuc "github.com/kailas-cloud/dinedex/internal/usecase/health"
	ratinguc "github.com/kailas-cloud/dinedex/internal/usecase/rating"
	restaurantuc "github.com/kailas-cloud/dinedex/internal/usecase/restaurant"
	reviewuc "github.com/kailas-cloud/dinedex/internal/usecase/review"
)

// maxBodyBytes caps request bodies, details documents included.
const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the restaurant directory HTTP API.
type Server struct {
	restaurants   *restaurantuc.Service
	ratings       *ratinguc.Service
	reviews       *reviewuc.Service
	cuisines      *cuisineuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	restaurants *restaurantuc.Service,
	ratings *ratinguc.Service,
	reviews *reviewuc.Service,
	cuisines *cuisineuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		restaurants: restaurants,
		ratings:     ratings,
		reviews:     reviews,
		cuisines:    cuisines,
		health:      health,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict),
	}
	return s
}

// Register mounts every route on r.
func (s *Server) Register(r chi.Router) {
	r.Route("/restaurants", func(r chi.Router) {
		r.Get("/", s.TopRestaurants)
		r.Post("/", s.CreateRestaurant)
		r.Get("/search", s.SearchRestaurants)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetRestaurant)
			r.Post("/details", s.SetDetails)
			r.Get("/details", s.GetDetails)
			r.Post("/reviews", s.AddReview)
			r.Get("/reviews", s.ListReviews)
			r.Get("/reviews/{reviewId}", s.GetReview)
			r.Delete("/reviews/{reviewId}", s.DeleteReview)
		})
	})
	r.Get("/cuisines", s.ListCuisines)
	r.Get("/cuisines/{cuisine}", s.CuisineRestaurants)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Error: message})
}

// safeDomainMessage returns a message for the client without exposing internals.
// Validation errors carry their reason; it comes from domain constructors, not the store.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidInput) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrRestaurantNotFound,
		domain.ErrDetailsNotFound,
		domain.ErrReviewNotFound,
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Debug("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

// partialIndexMessage reports a write whose derived structures lag behind.
// ok is false when err is anything else.
func partialIndexMessage(base string, err error) (string, bool) {
	var pie *domain.PartialIndexError
	if !errors.As(err, &pie) {
		return "", false
	}
	return base + " (not indexed in: " + strings.Join(pie.Failed, ", ") + ")", true
}
