// Package api exposes the matching engine over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/adapters/http/swagger"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/matching"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/pkg/logger"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/pkg/metrics"
)

const (
	defaultMaxLimit     = 100
	defaultMaxBodyBytes = 8 << 20
)

// Dependencies required by HTTP handlers. Handlers never hold state of
// their own; every request carries the records it wants scored.
type Dependencies interface {
	AnalyzeSwipes(ctx context.Context, events []model.SwipeEvent) (model.SwipeStatistics, error)
	Classify(ctx context.Context, scores model.CategoryScores, events []model.SwipeEvent) (model.Classification, error)
	Compatibility(ctx context.Context, a, b model.User) (model.CompatibilityResult, error)
	FindMatches(ctx context.Context, req matching.Request) (matching.Evaluation, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	deps Dependencies

	healthHandler *HealthHandler
	statsHandler  *StatsHandler

	maxLimit     int
	maxBodyBytes int64
	timeout      time.Duration
	logger       logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxLimit sets the largest accepted ?limit= value.
func WithMaxLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// WithMaxBodyBytes caps the size of request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithRequestTimeout bounds every request. Zero disables the timeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d >= 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the logger for the Server.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		deps:          deps,
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		maxLimit:      defaultMaxLimit,
		maxBodyBytes:  defaultMaxBodyBytes,
		logger:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the chi router with middleware and all routes attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(MetricsMiddleware)
	r.Use(chimiddleware.Recoverer)
	if s.timeout > 0 {
		r.Use(chimiddleware.Timeout(s.timeout))
	}

	r.Get("/healthz", s.healthHandler.HandleHealth)
	r.Get("/stats", s.statsHandler.HandleStats)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	swagger.Register(r)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/genres", s.handleGenres)
		r.Post("/swipes/analyze", s.handleAnalyzeSwipes)
		r.Post("/archetypes/classify", s.handleClassify)
		r.Post("/compatibility", s.handleCompatibility)
		r.Post("/matches", s.handleMatches)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	})
	return r
}

// decode reads a JSON body into v and validates it.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v validatable) error {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	defer func() { _ = body.Close() }()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrBadRequest)
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: body exceeds %d bytes", ErrBadRequest, tooLarge.Limit)
		}
		return fmt.Errorf("%w: %s", ErrBadRequest, err.Error())
	}
	return v.validate()
}

// fail writes err with the status its kind maps to. Server-side failures are
// logged; client mistakes are only counted.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		metrics.RecordErrorByComponent("api", code)
		s.logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.String("request_id", chimiddleware.GetReqID(r.Context())),
			logger.Error(err),
		)
	}
	writeError(w, status, code, err)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
