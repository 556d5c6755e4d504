// Package httpapi serves the map page, the GeoJSON and summary endpoints,
// and the operational endpoints (health, readiness, metrics).
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/hanriverlabs/riskzone-map/internal/dataset"
	"github.com/hanriverlabs/riskzone-map/internal/domain"
	"github.com/hanriverlabs/riskzone-map/internal/observability"
)

// Deps are the collaborators the server needs.
type Deps struct {
	Store          *dataset.Store
	Geocoder       domain.Geocoder // nil when geocoding is disabled
	Metrics        *observability.Metrics
	Logger         *slog.Logger
	DefaultAddress string
}

// Server exposes the map viewer over HTTP.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the router and wraps it in an http.Server with sane
// timeouts.
func NewServer(addr string, deps Deps) *Server {
	h := &handlers{
		store:          deps.Store,
		geocoder:       deps.Geocoder,
		metrics:        deps.Metrics,
		logger:         deps.Logger,
		defaultAddress: deps.DefaultAddress,
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestMetrics(deps.Metrics))
	r.Use(requestLogger(deps.Logger))
	r.Use(cors.Default().Handler)

	r.Get("/", h.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Get("/zones", h.handleZones)
		r.Get("/parcels", h.handleParcels)
		r.Get("/summary", h.handleSummary)
		r.Get("/geocode", h.handleGeocode)
	})
	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady(deps.Store))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: deps.Logger,
	}
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// requestLogger emits one debug line per request. Kept at debug so the
// default info level stays quiet under map tile and poll traffic.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// requestMetrics records request duration by route pattern and status code.
func requestMetrics(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequestDuration.
				WithLabelValues(route, strconv.Itoa(ww.Status())).
				Observe(time.Since(start).Seconds())
		})
	}
}
