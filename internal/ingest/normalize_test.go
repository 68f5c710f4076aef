package ingest

import (
	"testing"

	"github.com/echomindr/echomindr/internal/moments"
)

func TestResolveSource_MetaWins(t *testing.T) {
	src := rawSource{
		Podcast: "guessed podcast",
		Episode: "guessed episode",
		Guest:   "Guessed Guest",
		URL:     "https://example.com/raw",
	}
	meta := Meta{
		Podcast: "How I Built This",
		Guest:   "Joe Gebbia",
		URL:     "https://www.youtube.com/watch?v=XYZ",
		Date:    "2023-04-01",
	}

	got := resolveSource(src, meta)
	want := moments.Source{
		Podcast: "How I Built This",
		Episode: "guessed episode",
		Guest:   "Joe Gebbia",
		Date:    "2023-04-01",
		URL:     "https://www.youtube.com/watch?v=XYZ",
	}
	if got != want {
		t.Errorf("resolveSource = %+v, want %+v", got, want)
	}
}

func TestResolveSource_RejectsURLPlaceholder(t *testing.T) {
	got := resolveSource(rawSource{URL: "ytsearch1:founder interview"}, Meta{})
	if got.URL != "" {
		t.Errorf("URL = %q, want empty", got.URL)
	}

	// A placeholder in the authoritative metadata also resolves to empty.
	got = resolveSource(
		rawSource{URL: "https://example.com/real"},
		Meta{URL: "ytsearch1:some query"})
	if got.URL != "" {
		t.Errorf("URL = %q, want empty", got.URL)
	}
}

func TestResolveSource_RejectsGuestPlaceholder(t *testing.T) {
	// Metadata guest unresolved: fall back to the raw value.
	got := resolveSource(rawSource{Guest: "Jane Founder"}, Meta{Guest: "TODO: fix guest"})
	if got.Guest != "Jane Founder" {
		t.Errorf("Guest = %q, want %q", got.Guest, "Jane Founder")
	}

	// Both unresolved: empty.
	got = resolveSource(rawSource{Guest: "TODO"}, Meta{Guest: "TODO: fix guest"})
	if got.Guest != "" {
		t.Errorf("Guest = %q, want empty", got.Guest)
	}
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"3:26", 206, true},
		{"1:23:45", 5025, true},
		{"1:02:03", 3723, true},
		{"0:00", 0, true},
		{"", 0, false},
		{"soon", 0, false},
		{"1:2:3:4", 0, false},
		{"12", 0, false},
		{"1:xx", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseTimestamp(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("ParseTimestamp(%q) = %d, %v; want %d, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestTimestampedURL(t *testing.T) {
	url := "https://www.youtube.com/watch?v=XYZ"

	if got := TimestampedURL(url, "1:02:03"); got != url+"&t=3723s" {
		t.Errorf("TimestampedURL = %q, want %q", got, url+"&t=3723s")
	}
	if got := TimestampedURL(url, "3:26"); got != url+"&t=206s" {
		t.Errorf("TimestampedURL = %q, want %q", got, url+"&t=206s")
	}

	// Unparseable timestamp: canonical URL unchanged.
	if got := TimestampedURL(url, "not a time"); got != url {
		t.Errorf("TimestampedURL = %q, want canonical URL", got)
	}

	// Non-watch URL: no timestamped variant.
	if got := TimestampedURL("https://example.com/ep1", "3:26"); got != "" {
		t.Errorf("TimestampedURL = %q, want empty", got)
	}
	if got := TimestampedURL("", "3:26"); got != "" {
		t.Errorf("TimestampedURL = %q, want empty", got)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	m := normalize(rawMoment{Summary: "something happened"}, Meta{})
	if m.Type != "unknown" {
		t.Errorf("Type = %q, want unknown", m.Type)
	}
	if m.ID == "" {
		t.Error("expected a fresh ID")
	}
}

func TestNormalize_FreshIDs(t *testing.T) {
	rm := rawMoment{Summary: "same input"}
	a := normalize(rm, Meta{})
	b := normalize(rm, Meta{})
	if a.ID == b.ID {
		t.Error("expected distinct IDs per normalized moment")
	}
}
