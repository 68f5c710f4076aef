package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/echomindr/echomindr/internal/moments"
)

// Placeholder markers left behind by the extraction stage when it could not
// resolve a value. Either source carrying one is rejected during the merge.
const (
	urlPlaceholderPrefix = "ytsearch1:"
	guestPlaceholder     = "TODO"
)

// watchURLPrefix is the only URL shape a timestamp offset can be appended to.
const watchURLPrefix = "https://www.youtube.com/watch?v="

// Meta is the authoritative per-episode metadata record (meta.json).
// Corrections here win over whatever the raw extraction guessed.
type Meta struct {
	Podcast string `json:"podcast"`
	Episode string `json:"episode"`
	Guest   string `json:"guest"`
	Date    string `json:"date"`
	URL     string `json:"url"`
}

// rawSource is the best-effort source guess embedded in a raw extraction.
type rawSource struct {
	Podcast string `json:"podcast"`
	Episode string `json:"episode"`
	Guest   string `json:"guest"`
	Date    string `json:"date"`
	URL     string `json:"url"`
}

// rawMoment is one candidate moment as produced by the extraction stage.
type rawMoment struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Summary   string `json:"summary"`
	Quote     string `json:"quote"`
	Decision  string `json:"decision"`
	Outcome   string `json:"outcome"`
	Lesson    string `json:"lesson"`
	Context   struct {
		Stage     string `json:"stage"`
		Situation string `json:"situation"`
	} `json:"context"`
	// Sample files carry stage/situation at the top level instead of
	// under context.
	Stage     string    `json:"stage"`
	Situation string    `json:"situation"`
	Tags      []string  `json:"tags"`
	Source    rawSource `json:"source"`
}

// resolveSource merges a raw extraction's source guess with the episode
// metadata. Metadata wins when present; placeholder values are rejected
// field by field.
func resolveSource(src rawSource, meta Meta) moments.Source {
	url := firstNonEmpty(meta.URL, src.URL)
	if strings.HasPrefix(url, urlPlaceholderPrefix) {
		url = ""
	}

	guest := firstNonEmpty(meta.Guest, src.Guest)
	if strings.Contains(guest, guestPlaceholder) {
		guest = src.Guest
	}
	if strings.Contains(guest, guestPlaceholder) {
		guest = ""
	}

	return moments.Source{
		Podcast: firstNonEmpty(meta.Podcast, src.Podcast),
		Episode: firstNonEmpty(meta.Episode, src.Episode),
		Guest:   guest,
		Date:    firstNonEmpty(meta.Date, src.Date),
		URL:     url,
	}
}

// ParseTimestamp converts a "3:26" or "1:23:45" position marker to seconds.
// Returns false for anything it cannot parse.
func ParseTimestamp(ts string) (int, bool) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return 0, false
	}

	parts := strings.Split(ts, ":")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, false
		}
		nums = append(nums, n)
	}

	switch len(nums) {
	case 2:
		return nums[0]*60 + nums[1], true
	case 3:
		return nums[0]*3600 + nums[1]*60 + nums[2], true
	}
	return 0, false
}

// TimestampedURL derives the moment-offset variant of a source URL. Only
// known watch URLs get a timestamp parameter; an unparseable timestamp
// leaves the canonical URL unchanged. Non-watch URLs yield "".
func TimestampedURL(url, timestamp string) string {
	if !strings.HasPrefix(url, watchURLPrefix) {
		return ""
	}
	seconds, ok := ParseTimestamp(timestamp)
	if !ok {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%st=%ds", url, sep, seconds)
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
