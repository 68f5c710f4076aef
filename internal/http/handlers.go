package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/echomindr/echomindr/internal/moments"
	"github.com/echomindr/echomindr/internal/reqlog"
	"github.com/echomindr/echomindr/internal/search"
)

const maxRequestBodySize = 1 << 20 // 1MB

type searchResponse struct {
	Query   string            `json:"query"`
	Filters map[string]string `json:"filters"`
	Count   int               `json:"count"`
	Moments []moments.Moment  `json:"moments"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	t0 := time.Now()
	q := r.URL.Query().Get("q")
	stage := r.URL.Query().Get("stage")
	typ := r.URL.Query().Get("type")
	podcast := r.URL.Query().Get("podcast")

	limit, err := limitParam(r, search.DefaultLimit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	results, err := s.engine.Search(r.Context(), search.DirectParams{
		Query:   q,
		Stage:   stage,
		Type:    typ,
		Podcast: podcast,
		Limit:   limit,
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}

	filters := activeFilters(map[string]string{
		"stage": stage, "type": typ, "podcast": podcast,
	})

	slog.Info("search", "q", q, "filters", filters, "results", len(results))
	s.record(r, "/search", q, filters, len(results), t0)

	writeJSON(w, http.StatusOK, searchResponse{
		Query:   q,
		Filters: filters,
		Count:   len(results),
		Moments: emptyIfNil(results),
	})
}

type situationRequest struct {
	Situation string `json:"situation"`
	Stage     string `json:"stage,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

type situationResponse struct {
	Situation     string           `json:"situation"`
	QueryKeywords []string         `json:"query_keywords"`
	StageFilter   string           `json:"stage_filter,omitempty"`
	Count         int              `json:"count"`
	Moments       []moments.Moment `json:"moments"`
}

func (s *Server) handleSituation(w http.ResponseWriter, r *http.Request) {
	t0 := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var req situationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("invalid JSON body: %v", err),
		})
		return
	}

	res, err := s.engine.Situation(r.Context(), search.SituationParams{
		Situation: req.Situation,
		Stage:     req.Stage,
		Limit:     req.Limit,
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}

	filters := activeFilters(map[string]string{"stage": req.Stage})

	slog.Info("situation match",
		"keywords", res.Keywords, "results", len(res.Moments))
	s.record(r, "/situation", truncate(req.Situation, 200), filters, len(res.Moments), t0)

	writeJSON(w, http.StatusOK, situationResponse{
		Situation:     req.Situation,
		QueryKeywords: res.Keywords,
		StageFilter:   req.Stage,
		Count:         len(res.Moments),
		Moments:       emptyIfNil(res.Moments),
	})
}

func (s *Server) handleMoment(w http.ResponseWriter, r *http.Request) {
	t0 := time.Now()
	id := r.PathValue("id")

	m, err := s.engine.Lookup(r.Context(), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	s.record(r, "/moments/"+id, id, nil, 1, t0)
	writeJSON(w, http.StatusOK, m)
}

type similarResponse struct {
	SourceID   string           `json:"source_id"`
	SourceTags []string         `json:"source_tags"`
	Count      int              `json:"count"`
	Moments    []moments.Moment `json:"moments"`
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	t0 := time.Now()
	id := r.PathValue("id")

	limit, err := limitParam(r, search.DefaultLimit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if limit < 1 || limit > search.MaxLimit {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("limit must be between 1 and %d", search.MaxLimit),
		})
		return
	}

	res, err := s.engine.Similar(r.Context(), id, limit)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	s.record(r, "/similar/"+id, id, nil, len(res.Moments), t0)
	writeJSON(w, http.StatusOK, similarResponse{
		SourceID:   res.SourceID,
		SourceTags: emptyIfNilStrings(res.SourceTags),
		Count:      len(res.Moments),
		Moments:    emptyIfNil(res.Moments),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.engine.Stats(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	slog.Info("stats", "total", st.TotalMoments)
	writeJSON(w, http.StatusOK, st)
}

// record hands the request off to the log sink; the sink never blocks and
// failures stay inside it.
func (s *Server) record(r *http.Request, endpoint, query string, filters map[string]string, count int, t0 time.Time) {
	if s.logs == nil {
		return
	}
	s.logs.Record(reqlog.Entry{
		Endpoint:    endpoint,
		Method:      r.Method,
		Query:       query,
		Filters:     filters,
		ResultCount: count,
		IP:          clientIP(r),
		UserAgent:   r.Header.Get("User-Agent"),
		Latency:     time.Since(t0),
	})
}

func limitParam(r *http.Request, def int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("limit must be an integer, got %q", raw)
	}
	return n, nil
}

func activeFilters(all map[string]string) map[string]string {
	active := make(map[string]string)
	for k, v := range all {
		if v != "" {
			active[k] = v
		}
	}
	return active
}

func emptyIfNil(ms []moments.Moment) []moments.Moment {
	if ms == nil {
		return []moments.Moment{}
	}
	return ms
}

func emptyIfNilStrings(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
