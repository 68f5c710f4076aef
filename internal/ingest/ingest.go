// Package ingest builds the searchable moments store from per-episode
// extraction output. Each episode directory holds a moments.json (raw
// extraction) and an optional meta.json with corrected metadata that is
// authoritative over the extraction's embedded source guess.
//
// Ingestion is an offline, single-writer batch: the store file is rebuilt
// from scratch on every run, never updated in place.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"github.com/echomindr/echomindr/internal/moments"
	"github.com/echomindr/echomindr/internal/store"
)

// Result summarizes an ingestion run.
type Result struct {
	Total        int
	SkippedFiles int
	ByType       map[string]int
	ByStage      map[string]int
	ByPodcast    map[string]int
	UniqueTags   int
	UniqueGuests int
}

type episodeFile struct {
	Moments []rawMoment `json:"moments"`
}

// Build walks episodesDir, normalizes every episode's moments and writes a
// fresh store at dbPath. Episodes with a missing, unparseable or empty
// moments.json are skipped and tallied; they never fail the batch.
func Build(ctx context.Context, episodesDir, dbPath string) (*Result, error) {
	entries, err := os.ReadDir(episodesDir)
	if err != nil {
		return nil, fmt.Errorf("read episodes dir: %w", err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(episodesDir, e.Name()))
		}
	}
	sort.Strings(dirs)

	res := newResult()
	var batch []moments.Moment
	tags := make(map[string]struct{})
	guests := make(map[string]struct{})

	for _, dir := range dirs {
		raw, ok := loadEpisode(dir)
		if !ok {
			res.SkippedFiles++
			continue
		}
		meta := loadMeta(dir)

		for _, rm := range raw {
			m := normalize(rm, meta)
			batch = append(batch, m)
			res.tally(m)
			for _, tag := range m.Tags {
				tags[tag] = struct{}{}
			}
			if m.Source.Guest != "" {
				guests[m.Source.Guest] = struct{}{}
			}
		}
	}

	res.UniqueTags = len(tags)
	res.UniqueGuests = len(guests)

	if err := writeStore(ctx, dbPath, batch); err != nil {
		return nil, err
	}

	slog.Info("ingestion complete",
		"moments", res.Total, "skipped_files", res.SkippedFiles, "db", dbPath)
	return res, nil
}

// BuildSample builds a store from a single flat JSON file of moments, used
// for development fixtures. Embedded IDs are honored when present; no
// metadata merge is applied.
func BuildSample(ctx context.Context, samplePath, dbPath string) (*Result, error) {
	data, err := os.ReadFile(samplePath)
	if err != nil {
		return nil, fmt.Errorf("read sample file: %w", err)
	}

	var raw []rawMoment
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse sample file: %w", err)
	}

	res := newResult()
	var batch []moments.Moment
	for _, rm := range raw {
		m := normalize(rm, Meta{})
		if rm.ID != "" {
			m.ID = rm.ID
		}
		batch = append(batch, m)
		res.tally(m)
	}

	if err := writeStore(ctx, dbPath, batch); err != nil {
		return nil, err
	}

	slog.Info("sample store built", "moments", res.Total, "db", dbPath)
	return res, nil
}

// normalize turns one raw extraction candidate into a finalized moment with
// a fresh identifier. Every candidate in a parsed file is accepted; there is
// no per-moment validation.
func normalize(rm rawMoment, meta Meta) moments.Moment {
	src := resolveSource(rm.Source, meta)
	src.URLAtMoment = TimestampedURL(src.URL, rm.Timestamp)

	typ := rm.Type
	if typ == "" {
		typ = "unknown"
	}

	stage := firstNonEmpty(rm.Context.Stage, rm.Stage)
	situation := firstNonEmpty(rm.Context.Situation, rm.Situation)

	return moments.Moment{
		ID:        uuid.NewString(),
		Type:      typ,
		Timestamp: rm.Timestamp,
		Summary:   rm.Summary,
		Quote:     rm.Quote,
		Decision:  rm.Decision,
		Outcome:   rm.Outcome,
		Lesson:    rm.Lesson,
		Stage:     stage,
		Situation: situation,
		Tags:      rm.Tags,
		Source:    src,
	}
}

// loadEpisode reads dir/moments.json. ok is false when the file is missing,
// unparseable, or holds zero moments.
func loadEpisode(dir string) ([]rawMoment, bool) {
	path := filepath.Join(dir, "moments.json")
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("skipping episode, no extraction file", "dir", dir)
		return nil, false
	}

	var ep episodeFile
	if err := json.Unmarshal(data, &ep); err != nil {
		slog.Warn("skipping episode, unparseable extraction file", "path", path, "error", err)
		return nil, false
	}
	if len(ep.Moments) == 0 {
		slog.Warn("skipping episode, no moments", "path", path)
		return nil, false
	}
	return ep.Moments, true
}

// loadMeta reads dir/meta.json; a missing or broken file just means no
// corrections for this episode.
func loadMeta(dir string) Meta {
	data, err := os.ReadFile(filepath.Join(dir, "meta.json"))
	if err != nil {
		return Meta{}
	}
	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		slog.Warn("ignoring unparseable meta.json", "dir", dir, "error", err)
		return Meta{}
	}
	return meta
}

func writeStore(ctx context.Context, dbPath string, batch []moments.Moment) error {
	s, err := store.Create(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.BulkInsert(ctx, batch); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	return nil
}

func newResult() *Result {
	return &Result{
		ByType:    make(map[string]int),
		ByStage:   make(map[string]int),
		ByPodcast: make(map[string]int),
	}
}

func (r *Result) tally(m moments.Moment) {
	r.Total++
	r.ByType[m.Type]++

	stage := m.Stage
	if stage == "" {
		stage = "unknown"
	}
	r.ByStage[stage]++

	podcast := m.Source.Podcast
	if podcast == "" {
		podcast = "unknown"
	}
	r.ByPodcast[podcast]++
}
