// Package server exposes ingestion over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ukaji3/xlingest-go/internal/logging"
	"github.com/ukaji3/xlingest-go/pkg/xlingest"
	"github.com/ukaji3/xlingest-go/pkg/xlingest/sink"
)

// Server serves the ingestion API.
type Server struct {
	ingestor *xlingest.Ingestor
	sink     sink.Writer
	router   chi.Router
	http     *http.Server
}

// New builds a Server listening on addr. A nil writer discards results.
func New(ingestor *xlingest.Ingestor, w sink.Writer, addr string) *Server {
	if w == nil {
		w = sink.Discard{}
	}
	s := &Server{ingestor: ingestor, sink: w}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/spreadsheets", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/{name}/ingest", s.handleIngest)
	})

	s.router = r
	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until Shutdown is called.
func (s *Server) ListenAndServe() error {
	logging.FromContext(context.Background()).Info("http server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logging.FromContext(r.Context()).Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context()).Error("request failed", "error", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// statusFor maps ingestion errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, xlingest.ErrNotFound):
		return http.StatusNotFound
	case xlingest.IsInvalid(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
