package store

import (
	"context"
	"fmt"

	"github.com/echomindr/echomindr/internal/moments"
)

// Stats are the aggregate counts served by the stats endpoint and printed
// after an ingestion run.
type Stats struct {
	TotalMoments int            `json:"total_moments"`
	ByType       map[string]int `json:"by_type"`
	ByStage      map[string]int `json:"by_stage"`
	Podcasts     int            `json:"podcasts"`
	Guests       int            `json:"guests"`
	UniqueTags   int            `json:"unique_tags"`
}

// Stats computes aggregate counts over the whole store.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats

	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM moments").Scan(&st.TotalMoments); err != nil {
		return st, fmt.Errorf("count moments: %w", err)
	}

	var err error
	st.ByType, err = s.groupCount(ctx,
		"SELECT type, COUNT(*) AS n FROM moments GROUP BY type ORDER BY n DESC")
	if err != nil {
		return st, fmt.Errorf("count by type: %w", err)
	}

	st.ByStage, err = s.groupCount(ctx,
		`SELECT stage, COUNT(*) AS n FROM moments
		 WHERE stage IS NOT NULL AND stage != '' GROUP BY stage ORDER BY n DESC`)
	if err != nil {
		return st, fmt.Errorf("count by stage: %w", err)
	}

	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(DISTINCT podcast) FROM moments").Scan(&st.Podcasts); err != nil {
		return st, fmt.Errorf("count podcasts: %w", err)
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT guest) FROM moments
		 WHERE guest IS NOT NULL AND guest != ''`).Scan(&st.Guests); err != nil {
		return st, fmt.Errorf("count guests: %w", err)
	}

	unique, err := s.uniqueTagCount(ctx)
	if err != nil {
		return st, fmt.Errorf("count tags: %w", err)
	}
	st.UniqueTags = unique

	return st, nil
}

func (s *Store) groupCount(ctx context.Context, query string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		counts[key] = n
	}
	return counts, rows.Err()
}

// uniqueTagCount parses every serialized tag list; rows with malformed tags
// are skipped rather than failing the aggregate.
func (s *Store) uniqueTagCount(ctx context.Context) (int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT tags FROM moments WHERE tags IS NOT NULL AND tags != '[]'")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	unique := make(map[string]struct{})
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return 0, err
		}
		tags, err := moments.DecodeTags(raw)
		if err != nil {
			continue
		}
		for _, tag := range tags {
			unique[tag] = struct{}{}
		}
	}
	return len(unique), rows.Err()
}
