// Package server exposes the render pipeline over HTTP.
//
// The render endpoint is content addressed: the URL carries the SHA-256
// hash of the diagram source and the source itself travels base64url
// encoded in the query string. The hash is verified before any work
// happens, so cached responses can never be poisoned by a mismatched
// URL, and CDN layers may cache aggressively.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/dnl-fm/ascii/pkg/pipeline"
)

// RenderTimeout is the wall-clock budget for one render request. The
// pipeline core only bounds work internally; the server adds the time
// bound callers observe as "diagram too complex".
const RenderTimeout = 5 * time.Second

// Server routes render requests to a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New assembles the router with its middleware stack.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	s := &Server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Cache-Status"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/render/ascii/{hash}", s.handleRender)
	r.Get("/validate/{hash}", s.handleValidate)

	s.router = r
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestID tags every request with a UUID, exposed in the response for
// log correlation.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"id", requestIDFrom(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
