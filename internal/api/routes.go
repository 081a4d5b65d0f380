package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agentstudio/estimator/internal/auth"
)

// Server wires the HTTP router, handlers, and middleware.
type Server struct {
	router   *mux.Router
	handlers *Handlers
}

// ServerOptions configures optional server features.
type ServerOptions struct {
	// RateLimiter, if set, throttles API requests per client.
	RateLimiter *RateLimiter

	// Auth, if set, enforces bearer-token authentication.
	Auth *auth.Middleware

	// TracingEnabled adds a span-per-request middleware.
	TracingEnabled bool
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(handlers *Handlers, opts *ServerOptions) *Server {
	if opts == nil {
		opts = &ServerOptions{}
	}

	s := &Server{
		router:   mux.NewRouter(),
		handlers: handlers,
	}
	s.setupRoutes(opts)
	return s
}

// Router returns the configured router.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRoutes(opts *ServerOptions) {
	h := s.handlers

	// Outermost first: CORS, tracing, then logging so the request ID
	// and metrics cover everything below.
	s.router.Use(h.CORSMiddleware)
	if opts.TracingEnabled {
		s.router.Use(h.TracingMiddleware)
	}
	s.router.Use(h.LoggingMiddleware)
	if opts.RateLimiter != nil {
		s.router.Use(opts.RateLimiter.Handler)
	}
	if opts.Auth != nil {
		s.router.Use(opts.Auth.Handler)
	}
	s.router.Use(h.RecoveryMiddleware)

	// Health and metrics
	s.router.HandleFunc("/health", h.Health).Methods("GET")
	s.router.HandleFunc("/healthz", h.Health).Methods("GET")
	s.router.HandleFunc("/ready", h.Ready).Methods("GET")
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// API v1
	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/estimates", h.CreateEstimate).Methods("POST")
	api.HandleFunc("/estimates/preview", h.PreviewEstimate).Methods("POST")
	api.HandleFunc("/estimates", h.ListEstimates).Methods("GET")
	api.HandleFunc("/estimates/{id}", h.GetEstimate).Methods("GET")
	api.HandleFunc("/estimates/{id}", h.DeleteEstimate).Methods("DELETE")

	api.HandleFunc("/workflows/validate", h.ValidateWorkflow).Methods("POST")
}
