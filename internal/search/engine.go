// Package search implements the two query modes over the moments store
// (direct keyword search and natural-language situation matching) plus
// tag-overlap similarity ranking.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/echomindr/echomindr/internal/keyword"
	"github.com/echomindr/echomindr/internal/moments"
	"github.com/echomindr/echomindr/internal/store"
)

// Usage errors. They describe bad input, never a server fault, and are
// reported to the caller with enough detail to correct the request.
var (
	ErrEmptyQuery     = errors.New("query cannot be empty")
	ErrEmptySituation = errors.New("situation cannot be empty")
	ErrNoKeywords     = errors.New("no meaningful keywords found in situation description")
	ErrLimitRange     = errors.New("limit out of range")
)

// Limits for the HTTP-facing paths. The agent-tool adapter applies its own
// tighter clamps on top.
const (
	DefaultLimit = 5
	MaxLimit     = 20
)

// Engine answers queries against a read-only moments store.
type Engine struct {
	store *store.Store
}

// New creates a query engine over the given store.
func New(s *store.Store) *Engine {
	return &Engine{store: s}
}

// DirectParams is a raw keyword query plus structured filters.
type DirectParams struct {
	Query   string
	Stage   string
	Type    string
	Podcast string
	Limit   int
}

// Search runs a direct keyword query. The query text is handed to the
// full-text engine essentially verbatim (trimmed); filters are ANDed with
// the match. An out-of-range limit is rejected, not clamped.
func (e *Engine) Search(ctx context.Context, p DirectParams) ([]moments.Moment, error) {
	q := strings.TrimSpace(p.Query)
	if q == "" {
		return nil, ErrEmptyQuery
	}
	limit := p.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return nil, fmt.Errorf("%w: %d (allowed 1-%d)", ErrLimitRange, p.Limit, MaxLimit)
	}

	return e.store.Search(ctx, q, store.SearchFilters{
		Stage:   p.Stage,
		Type:    p.Type,
		Podcast: p.Podcast,
	}, limit)
}

// SituationParams is a free-text situation description with an optional
// stage filter.
type SituationParams struct {
	Situation string
	Stage     string
	Limit     int
}

// SituationResult carries the extracted keywords alongside the matches so
// callers can show what was actually searched.
type SituationResult struct {
	Keywords []string
	Moments  []moments.Moment
}

// Situation matches moments against a natural-language description. The
// description is reduced to keywords and joined with OR: any-term match,
// ranked by relevance. Zero extracted keywords is a usage error: the
// caller is told the input had no actionable terms rather than getting an
// unfiltered result set. The limit is clamped into [1, MaxLimit].
func (e *Engine) Situation(ctx context.Context, p SituationParams) (*SituationResult, error) {
	text := strings.TrimSpace(p.Situation)
	if text == "" {
		return nil, ErrEmptySituation
	}

	keywords := keyword.Extract(text)
	if len(keywords) == 0 {
		return nil, ErrNoKeywords
	}

	limit := clampLimit(p.Limit, MaxLimit)
	match := strings.Join(keywords, " OR ")

	results, err := e.store.Search(ctx, match, store.SearchFilters{Stage: p.Stage}, limit)
	if err != nil {
		return nil, err
	}
	return &SituationResult{Keywords: keywords, Moments: results}, nil
}

// Lookup returns one moment by ID; a missing ID is store.ErrNotFound, never
// an empty success.
func (e *Engine) Lookup(ctx context.Context, id string) (moments.Moment, error) {
	return e.store.Get(ctx, id)
}

// Stats returns the store-wide aggregates.
func (e *Engine) Stats(ctx context.Context) (store.Stats, error) {
	return e.store.Stats(ctx)
}

func clampLimit(limit, max int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > max {
		return max
	}
	return limit
}
