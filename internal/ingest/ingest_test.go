package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/echomindr/echomindr/internal/store"
)

func writeEpisode(t *testing.T, root, name, momentsJSON, metaJSON string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if momentsJSON != "" {
		if err := os.WriteFile(filepath.Join(dir, "moments.json"), []byte(momentsJSON), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if metaJSON != "" {
		if err := os.WriteFile(filepath.Join(dir, "meta.json"), []byte(metaJSON), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestBuild(t *testing.T) {
	root := t.TempDir()
	dbPath := filepath.Join(t.TempDir(), "moments.db")

	writeEpisode(t, root, "airbnb-joe-gebbia", `{
		"moments": [
			{
				"type": "decision",
				"timestamp": "3:26",
				"summary": "Sold cereal boxes to fund the company",
				"quote": "We were literally selling cereal",
				"context": {"stage": "idea", "situation": "out of money before demo day"},
				"tags": ["fundraising", "scrappiness"],
				"source": {"podcast": "guessed", "guest": "TODO find guest", "url": "ytsearch1:airbnb founder"}
			},
			{
				"type": "lesson",
				"summary": "Design founders obsess over the experience",
				"tags": ["product"]
			}
		]
	}`, `{
		"podcast": "How I Built This",
		"episode": "Airbnb: Joe Gebbia",
		"guest": "Joe Gebbia",
		"date": "2018-10-01",
		"url": "https://www.youtube.com/watch?v=BhHfnXOgtIE"
	}`)

	// Unparseable extraction: skipped, counted.
	writeEpisode(t, root, "broken-episode", `{"moments": [`, "")

	// Parseable but empty: skipped, counted.
	writeEpisode(t, root, "empty-episode", `{"moments": []}`, "")

	// No extraction file at all: skipped, counted.
	writeEpisode(t, root, "pending-episode", "", `{"podcast": "Acquired"}`)

	res, err := Build(context.Background(), root, dbPath)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if res.Total != 2 {
		t.Errorf("Total = %d, want 2", res.Total)
	}
	if res.SkippedFiles != 3 {
		t.Errorf("SkippedFiles = %d, want 3", res.SkippedFiles)
	}
	if res.ByType["decision"] != 1 || res.ByType["lesson"] != 1 {
		t.Errorf("ByType = %v", res.ByType)
	}
	if res.ByPodcast["How I Built This"] != 2 {
		t.Errorf("ByPodcast = %v", res.ByPodcast)
	}
	if res.UniqueTags != 3 {
		t.Errorf("UniqueTags = %d, want 3", res.UniqueTags)
	}
	if res.UniqueGuests != 1 {
		t.Errorf("UniqueGuests = %d, want 1", res.UniqueGuests)
	}

	// The written store is immediately queryable.
	s, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	results, err := s.Search(context.Background(), "cereal", store.SearchFilters{}, 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	m := results[0]
	if m.Source.Guest != "Joe Gebbia" {
		t.Errorf("Guest = %q, want metadata correction", m.Source.Guest)
	}
	if m.Source.URL != "https://www.youtube.com/watch?v=BhHfnXOgtIE" {
		t.Errorf("URL = %q, want metadata URL", m.Source.URL)
	}
	if m.Source.URLAtMoment != "https://www.youtube.com/watch?v=BhHfnXOgtIE&t=206s" {
		t.Errorf("URLAtMoment = %q", m.Source.URLAtMoment)
	}
	if m.Stage != "idea" || m.Situation == "" {
		t.Errorf("context fields not carried: stage=%q situation=%q", m.Stage, m.Situation)
	}
	if m.ID == "" {
		t.Error("moment has no ingestion-time ID")
	}
}

func TestBuildSample(t *testing.T) {
	dir := t.TempDir()
	samplePath := filepath.Join(dir, "sample_moments.json")
	dbPath := filepath.Join(dir, "moments.db")

	sample := `[
		{
			"id": "fixed-id-1",
			"type": "advice",
			"timestamp": "1:02:03",
			"summary": "Charge more than feels comfortable",
			"stage": "mvp",
			"tags": ["pricing"],
			"source": {"podcast": "My First Million", "url": "https://www.youtube.com/watch?v=XYZ"}
		},
		{
			"type": "signal",
			"summary": "Users shared the tool without being asked"
		}
	]`
	if err := os.WriteFile(samplePath, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := BuildSample(context.Background(), samplePath, dbPath)
	if err != nil {
		t.Fatalf("BuildSample: %v", err)
	}
	if res.Total != 2 {
		t.Errorf("Total = %d, want 2", res.Total)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	// Embedded IDs are honored in sample mode.
	m, err := s.Get(context.Background(), "fixed-id-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if m.Source.URLAtMoment != "https://www.youtube.com/watch?v=XYZ&t=3723s" {
		t.Errorf("URLAtMoment = %q", m.Source.URLAtMoment)
	}
	if m.Stage != "mvp" {
		t.Errorf("Stage = %q, want mvp (top-level field)", m.Stage)
	}
}
