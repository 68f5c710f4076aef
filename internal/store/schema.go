package store

import "fmt"

// The FTS5 table indexes the narrative fields plus the serialized tags and
// guest name, keyed to the moments table by rowid. The store is rebuilt
// wholesale by ingestion, so both tables are always in sync.
var schema = []string{
	`CREATE TABLE moments (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		timestamp TEXT,
		summary TEXT NOT NULL,
		quote TEXT,
		decision TEXT,
		outcome TEXT,
		lesson TEXT,
		stage TEXT,
		situation TEXT,
		tags TEXT,
		podcast TEXT,
		episode TEXT,
		guest TEXT,
		episode_date TEXT,
		source_url TEXT,
		url_at_moment TEXT,
		created_at TEXT DEFAULT (datetime('now'))
	)`,
	`CREATE VIRTUAL TABLE moments_fts USING fts5(
		summary,
		quote,
		decision,
		outcome,
		lesson,
		situation,
		tags,
		guest,
		content=moments,
		content_rowid=rowid
	)`,
	`CREATE INDEX idx_moments_type ON moments(type)`,
	`CREATE INDEX idx_moments_stage ON moments(stage)`,
	`CREATE INDEX idx_moments_podcast ON moments(podcast)`,
}

func (s *Store) createSchema() error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %.40q: %w", stmt, err)
		}
	}
	return nil
}
