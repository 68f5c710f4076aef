// Package http exposes the query engine over a small JSON API, with an
// append-only request log, per-client rate limiting and a token-gated admin
// surface for the log aggregates.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/echomindr/echomindr/internal/config"
	"github.com/echomindr/echomindr/internal/reqlog"
	"github.com/echomindr/echomindr/internal/search"
	"github.com/echomindr/echomindr/internal/store"
)

// Server handles the public and admin HTTP endpoints.
type Server struct {
	engine *search.Engine
	logs   *reqlog.Sink

	mu         sync.RWMutex
	adminToken string
	limiter    *ipLimiter
}

// New creates a server over the given engine and log sink.
func New(engine *search.Engine, logs *reqlog.Sink, cfg *config.Config) *Server {
	return &Server{
		engine:     engine,
		logs:       logs,
		adminToken: cfg.AdminToken,
		limiter:    newIPLimiter(cfg.Rate.RPS, cfg.Rate.Burst),
	}
}

// ApplyConfig installs a freshly reloaded config: admin token and rate
// limits take effect without a restart.
func (s *Server) ApplyConfig(cfg *config.Config) {
	s.mu.Lock()
	s.adminToken = cfg.AdminToken
	s.mu.Unlock()
	s.limiter.setRate(cfg.Rate.RPS, cfg.Rate.Burst)
	slog.Info("http config applied", "admin_gate", cfg.AdminToken != "")
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /search", s.rateLimited(s.handleSearch))
	mux.HandleFunc("POST /situation", s.rateLimited(s.handleSituation))
	mux.HandleFunc("GET /moments/{id}", s.rateLimited(s.handleMoment))
	mux.HandleFunc("GET /similar/{id}", s.rateLimited(s.handleSimilar))
	mux.HandleFunc("GET /stats", s.rateLimited(s.handleStats))
	mux.HandleFunc("GET /llms.txt", s.handleLLMSTxt)
	mux.HandleFunc("GET /{$}", s.handleRoot)

	mux.HandleFunc("GET /admin/logs", s.requireAdmin(s.handleAdminLogs))
	mux.HandleFunc("GET /admin/dashboard", s.requireAdmin(s.handleAdminDashboard))

	return mux
}

func (s *Server) rateLimited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.allow(clientIP(r)) {
			writeJSON(w, http.StatusTooManyRequests, map[string]string{
				"error": "rate limit exceeded, slow down",
			})
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("write response failed", "error", err)
	}
}

// writeEngineError maps core errors onto the HTTP taxonomy: usage errors
// and malformed match expressions are 400, unknown IDs 404, anything else
// a 500 with the detail kept server-side.
func writeEngineError(w http.ResponseWriter, err error) {
	var qerr *store.QueryError
	switch {
	case errors.Is(err, search.ErrEmptyQuery),
		errors.Is(err, search.ErrEmptySituation),
		errors.Is(err, search.ErrNoKeywords),
		errors.Is(err, search.ErrLimitRange):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.As(err, &qerr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": qerr.Error()})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the
// connection's remote address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i > 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
