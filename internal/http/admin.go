package http

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// requireAdmin gates a handler behind the bearer token. An unconfigured
// token disables the admin surface entirely (503) rather than leaving it
// open.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		token := s.adminToken
		s.mu.RUnlock()

		if token == "" {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"error": "admin token not configured on server",
			})
			return
		}

		presented := bearerToken(r)
		if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "invalid or missing admin token",
			})
			return
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return auth[len(prefix):]
	}
	return ""
}

func (s *Server) handleAdminLogs(w http.ResponseWriter, r *http.Request) {
	hours := intParam(r, "hours", 24)
	limit := intParam(r, "limit", 50)

	activity, err := s.logs.RecentActivity(r.Context(), hours, limit)
	if err != nil {
		slog.Error("admin logs query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := s.logs.UsageDashboard(r.Context())
	if err != nil {
		slog.Error("admin dashboard query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

func intParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
