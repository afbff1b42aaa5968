// Package api exposes the categorization engine over HTTP. The routes
// mirror the operations the CLI offers: process a statement, learn
// corrections, list categories and learned patterns.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reeselc/centsible/internal/engine"
	"github.com/reeselc/centsible/internal/service"
)

// Server handles HTTP requests for the categorization engine.
type Server struct {
	store       service.PatternStore
	extractor   service.Extractor
	categorizer *engine.Categorizer
	router      chi.Router
}

// NewServer creates a Server wired to the given collaborators.
func NewServer(store service.PatternStore, extractor service.Extractor) *Server {
	s := &Server{
		store:       store,
		extractor:   extractor,
		categorizer: engine.New(store),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/categories", s.handleCategories)
	r.Get("/patterns", s.handlePatterns)
	r.Post("/process", s.handleProcess)
	r.Post("/learn", s.handleLearn)
	r.Post("/batch-learn", s.handleBatchLearn)
	r.Handle("/metrics", promhttp.Handler())

	s.router = r
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until the context is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	slog.Info("HTTP server listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// requestLogger logs each request with method, path and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("Handled request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
