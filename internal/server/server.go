// Package server implements the ribbonpack HTTP API.
//
// The API exposes the same pipeline as the CLI:
//
//	GET  /healthz                 liveness and build version
//	GET  /api/catalog             named examples
//	GET  /api/catalog/{name}      one example
//	GET  /api/functions           expression functions
//	POST /api/pack                run the pipeline, JSON summary with artifacts
//	POST /api/render/{format}     run the pipeline, raw artifact bytes
//	GET  /api/stats               event counters, when configured with [WithStats]
//
// Request bodies are [pipeline.Options] in JSON. Errors are reported as
// {"error", "message", "code"} with the status from [perrors.HTTPStatus].
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/ribbonpack/pkg/buildinfo"
	"github.com/matzehuels/ribbonpack/pkg/catalog"
	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
	"github.com/matzehuels/ribbonpack/pkg/expr"
	"github.com/matzehuels/ribbonpack/pkg/observability"
	"github.com/matzehuels/ribbonpack/pkg/pipeline"
	"github.com/matzehuels/ribbonpack/pkg/render/diagram/sink"
)

const (
	DefaultTimeout     = 2 * time.Minute // Per-request pipeline deadline
	DefaultMaxBodySize = 1 << 20         // Largest accepted request body
	shutdownTimeout    = 10 * time.Second
)

// Option configures a [Server].
type Option func(*Server)

// WithTimeout sets the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxBodySize limits request bodies to n bytes.
func WithMaxBodySize(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithStats serves the snapshot of c at /api/stats. The caller registers
// c as the observability hooks.
func WithStats(c *observability.Counters) Option { return func(s *Server) { s.stats = c } }

// Server serves the pipeline over HTTP. It is safe for concurrent use.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	timeout time.Duration
	maxBody int64
	stats   *observability.Counters
	router  chi.Router
}

// New returns a server running requests through runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:  runner,
		logger:  logger,
		timeout: DefaultTimeout,
		maxBody: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Get("/catalog/{name}", s.handleExample)
		r.Get("/functions", s.handleFunctions)
		r.Post("/pack", s.handlePack)
		r.Post("/render/{format}", s.handleRender)
		if s.stats != nil {
			r.Get("/stats", s.handleStats)
		}
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Current(),
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.All())
}

func (s *Server) handleExample(w http.ResponseWriter, r *http.Request) {
	e, err := catalog.Get(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

func (s *Server) handleFunctions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, expr.Functions())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.DeadlineExceeded) && perrors.GetCode(err) == "" {
		err = perrors.Wrap(perrors.ErrCodeTimeout, err, "request timed out")
	}
	status := perrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error:     err.Error(),
		Message:   perrors.UserMessage(err),
		Code:      string(perrors.GetCode(err)),
		RequestID: RequestID(r.Context()),
	})
}

// contentType returns the MIME type for a format name.
func contentType(format string) string {
	f, err := sink.ParseFormat(format)
	if err != nil {
		return "application/octet-stream"
	}
	return f.ContentType()
}
