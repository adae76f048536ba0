// Package http exposes the handbook asker over a JSON HTTP API.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/handbook"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxRequestBytes bounds the size of an ask request body.
const maxRequestBytes = 64 << 10

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	asker   handbook.Asker
	limiter *KeyLimiter
	log     *slog.Logger
}

// NewServer creates and configures the HTTP server. limiter may be nil to
// disable rate limiting.
func NewServer(asker handbook.Asker, limiter *KeyLimiter, log *slog.Logger) *Server {
	s := &Server{asker: asker, limiter: limiter, log: log}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/ask", s.handleAsk)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var q handbook.Question
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&q); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if s.limiter != nil && !s.limiter.Allow(q.AccessCode) {
		w.Header().Set("Retry-After", "1")
		jsonError(w, "too many requests", http.StatusTooManyRequests)
		return
	}

	answer, err := s.asker.Ask(r.Context(), &q)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(answer)
}

// handleError maps application error codes to HTTP status codes.
// Internal error details are logged, not returned.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	code, message := handbook.ErrorCode(err), handbook.ErrorMessage(err)
	if code == handbook.EINTERNAL {
		s.log.Error("ask failed",
			"request_id", middleware.GetReqID(r.Context()),
			"err", err,
		)
	}
	jsonError(w, message, errorStatus(code))
}

var codes = map[string]int{
	handbook.ECONFLICT:  http.StatusConflict,
	handbook.EFORBIDDEN: http.StatusForbidden,
	handbook.EINVALID:   http.StatusBadRequest,
	handbook.ENOTFOUND:  http.StatusNotFound,
	handbook.EINTERNAL:  http.StatusInternalServerError,
}

func errorStatus(code string) int {
	if status, ok := codes[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// RequestLogger logs incoming requests.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
