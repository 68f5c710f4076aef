package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/echomindr/echomindr/internal/moments"
)

// Every query aliases the moments table as m so one column list serves both
// the plain selects and the FTS join.
const momentColumns = `m.id, m.type, COALESCE(m.timestamp, ''), m.summary,
	COALESCE(m.quote, ''), COALESCE(m.decision, ''), COALESCE(m.outcome, ''),
	COALESCE(m.lesson, ''), COALESCE(m.stage, ''), COALESCE(m.situation, ''),
	COALESCE(m.tags, ''),
	COALESCE(m.podcast, ''), COALESCE(m.episode, ''), COALESCE(m.guest, ''),
	COALESCE(m.episode_date, ''), COALESCE(m.source_url, ''), COALESCE(m.url_at_moment, '')`

// SearchFilters are the structured filters composed (AND) with the full-text
// match. Stage and Type are equality filters; Podcast is a substring match.
type SearchFilters struct {
	Stage   string
	Type    string
	Podcast string
}

// Search executes a full-text match expression against the index and returns
// up to limit moments ordered by bm25 relevance (best first). Equal-rank rows
// keep rowid (insertion) order, the engine default. A match expression the
// engine rejects comes back as *QueryError.
func (s *Store) Search(ctx context.Context, match string, f SearchFilters, limit int) ([]moments.Moment, error) {
	where := ""
	args := []any{match}

	if f.Stage != "" {
		where += " AND m.stage = ?"
		args = append(args, f.Stage)
	}
	if f.Type != "" {
		where += " AND m.type = ?"
		args = append(args, f.Type)
	}
	if f.Podcast != "" {
		where += " AND m.podcast LIKE ?"
		args = append(args, "%"+f.Podcast+"%")
	}
	args = append(args, limit)

	query := fmt.Sprintf(`SELECT %s
		FROM moments_fts f
		JOIN moments m ON m.rowid = f.rowid
		WHERE moments_fts MATCH ?%s
		ORDER BY f.rank
		LIMIT ?`, momentColumns, where)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &QueryError{Query: match, Err: err}
	}
	defer rows.Close()

	var results []moments.Moment
	for rows.Next() {
		m, err := scanMoment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan moment: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		// fts5 can also reject the expression lazily, on first step
		return nil, &QueryError{Query: match, Err: err}
	}
	return results, nil
}

// Get returns the moment with the given ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (moments.Moment, error) {
	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM moments m WHERE m.id = ?", momentColumns), id)

	m, err := scanMoment(row)
	if err == sql.ErrNoRows {
		return moments.Moment{}, ErrNotFound
	}
	if err != nil {
		return moments.Moment{}, fmt.Errorf("get moment %s: %w", id, err)
	}
	return m, nil
}

// TaggedExcept returns every moment carrying at least one serialized tag,
// excluding the given ID. Used by the similarity scorer's candidate scan.
func (s *Store) TaggedExcept(ctx context.Context, id string) ([]moments.Moment, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT %s FROM moments m WHERE m.id != ? AND m.tags IS NOT NULL AND m.tags != '[]'`,
		momentColumns), id)
	if err != nil {
		return nil, fmt.Errorf("tagged moments: %w", err)
	}
	defer rows.Close()

	var results []moments.Moment
	for rows.Next() {
		m, err := scanMoment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan moment: %w", err)
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

// scanMoment reads one momentColumns row. A tags column that fails to parse
// as a JSON list yields a moment with no tags; the similarity scorer then
// skips such rows instead of failing the whole scan.
func scanMoment(row scanner) (moments.Moment, error) {
	var m moments.Moment
	var tags string
	err := row.Scan(
		&m.ID, &m.Type, &m.Timestamp, &m.Summary,
		&m.Quote, &m.Decision, &m.Outcome,
		&m.Lesson, &m.Stage, &m.Situation,
		&tags,
		&m.Source.Podcast, &m.Source.Episode, &m.Source.Guest,
		&m.Source.Date, &m.Source.URL, &m.Source.URLAtMoment)
	if err != nil {
		return moments.Moment{}, err
	}

	if decoded, err := moments.DecodeTags(tags); err == nil {
		m.Tags = decoded
	}
	return m, nil
}
