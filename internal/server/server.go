// Package server exposes the sanitizer over a small JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"
	ms "github.com/mitchellh/mapstructure"

	"github.com/njchilds90/disinfecturl"
	"github.com/njchilds90/disinfecturl/internal/config"
)

// sanitizeRequest is the body of POST /v1/sanitize. Input may be any
// JSON value; only strings are sanitized.
type sanitizeRequest struct {
	Input any    `json:"input"`
	Mode  string `json:"mode" validate:"omitempty,oneof=auto url html"`
}

type sanitizeResponse struct {
	Result *string `json:"result"`
}

// batchRequest is the body of POST /v1/batch.
type batchRequest struct {
	Inputs []any  `json:"inputs" validate:"required"`
	Mode   string `json:"mode" validate:"omitempty,oneof=auto url html"`
}

type batchResponse struct {
	Results []*string `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server serves the HTTP API.
type Server struct {
	cfg      config.HTTPConfig
	mode     disinfecturl.Mode
	san      *disinfecturl.Sanitizer
	logger   *slog.Logger
	router   *httprouter.Router
	validate *validator.Validate
}

// New builds a Server. mode is used for requests that do not name one.
func New(cfg config.HTTPConfig, mode disinfecturl.Mode, san *disinfecturl.Sanitizer, logger *slog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		mode:     mode,
		san:      san,
		logger:   logger.With("area", "http"),
		router:   httprouter.New(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	s.router.POST("/v1/sanitize", s.handleSanitize)
	s.router.POST("/v1/batch", s.handleBatch)
	s.router.GET("/healthz", s.handleHealth)
	return s
}

// Handler returns the router wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.router)
}

// Run listens on the configured address and serves until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting HTTP server", "addr", ln.Addr())

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleSanitize(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req sanitizeRequest
	if err := s.bind(w, r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	mode := s.requestMode(req.Mode)
	s.writeJSON(w, http.StatusOK, sanitizeResponse{Result: s.run(mode, req.Input)})
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req batchRequest
	if err := s.bind(w, r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if len(req.Inputs) > s.cfg.MaxBatch {
		s.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
			Error: fmt.Sprintf("batch of %d inputs exceeds limit of %d", len(req.Inputs), s.cfg.MaxBatch),
		})
		return
	}
	mode := s.requestMode(req.Mode)
	resp := batchResponse{Results: make([]*string, len(req.Inputs))}
	for i, in := range req.Inputs {
		resp.Results[i] = s.run(mode, in)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) requestMode(name string) disinfecturl.Mode {
	if name == "" {
		return s.mode
	}
	// Already validated.
	return disinfecturl.Mode(name)
}

func (s *Server) run(mode disinfecturl.Mode, input any) *string {
	out, ok := s.san.SanitizeAs(mode, input)
	if !ok {
		return nil
	}
	return &out
}

// bind decodes a JSON object body into v (a pointer to a request struct)
// rejecting unknown fields, then validates it.
func (s *Server) bind(w http.ResponseWriter, r *http.Request, v any) error {
	defer r.Body.Close()

	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		return fmt.Errorf("reading body: %w", err)
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("decoding body: %w", err)
	}

	dec, err := ms.NewDecoder(&ms.DecoderConfig{
		TagName:     "json",
		Result:      v,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(m); err != nil {
		return fmt.Errorf("decoding body: %w", err)
	}

	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("writing response", "error", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
