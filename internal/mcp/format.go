package mcp

import (
	"fmt"
	"strings"

	"github.com/echomindr/echomindr/internal/moments"
)

// formatMoments renders a result list as readable text for agents. Tool
// output is prose rather than JSON so models can quote from it directly.
func formatMoments(ms []moments.Moment) string {
	if len(ms) == 0 {
		return "No matching experiences found. Try broadening your search."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d relevant founder experience(s):\n\n", len(ms))

	for i, m := range ms {
		b.WriteString("---\n")
		fmt.Fprintf(&b, "%d. [%s] %s — %s (%s)\n",
			i+1, strings.ToUpper(m.Type),
			orUnknown(m.Source.Episode), orUnknown(m.Source.Guest), m.Source.Podcast)
		fmt.Fprintf(&b, "Stage: %s | At: %s\n", orDash(m.Stage), orDash(m.Timestamp))
		fmt.Fprintf(&b, "Moment ID: %s\n\n", m.ID)
		fmt.Fprintf(&b, "Summary: %s\n\n", m.Summary)
		if m.Quote != "" {
			fmt.Fprintf(&b, "Quote: %q\n\n", m.Quote)
		}
		if m.Decision != "" {
			fmt.Fprintf(&b, "Decision: %s\n", m.Decision)
		}
		if m.Outcome != "" {
			fmt.Fprintf(&b, "Outcome: %s\n", m.Outcome)
		}
		if m.Lesson != "" {
			fmt.Fprintf(&b, "Lesson: %s\n", m.Lesson)
		}
		b.WriteString("\n")
		if len(m.Tags) > 0 {
			fmt.Fprintf(&b, "Tags: %s\n", strings.Join(m.Tags, ", "))
		}
		if url := sourceURL(m); url != "" {
			fmt.Fprintf(&b, "Link: %s\n", url)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatMoment renders one moment in full detail.
func formatMoment(m moments.Moment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", strings.ToUpper(m.Type), orUnknown(m.Source.Episode))
	fmt.Fprintf(&b, "Guest: %s\n", orUnknown(m.Source.Guest))
	fmt.Fprintf(&b, "Podcast: %s | Date: %s\n", m.Source.Podcast, m.Source.Date)
	fmt.Fprintf(&b, "Stage: %s | Timestamp: %s\n", orDash(m.Stage), orDash(m.Timestamp))
	fmt.Fprintf(&b, "ID: %s\n\n", m.ID)
	fmt.Fprintf(&b, "Summary:\n%s\n\n", m.Summary)
	if m.Quote != "" {
		fmt.Fprintf(&b, "Quote:\n%q\n\n", m.Quote)
	}
	if m.Decision != "" {
		fmt.Fprintf(&b, "Decision:\n%s\n\n", m.Decision)
	}
	if m.Outcome != "" {
		fmt.Fprintf(&b, "Outcome:\n%s\n\n", m.Outcome)
	}
	if m.Lesson != "" {
		fmt.Fprintf(&b, "Lesson:\n%s\n\n", m.Lesson)
	}
	if m.Situation != "" {
		fmt.Fprintf(&b, "Context:\n%s\n\n", m.Situation)
	}
	if len(m.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(m.Tags, ", "))
	}
	if url := sourceURL(m); url != "" {
		fmt.Fprintf(&b, "Link: %s\n", url)
	}
	return strings.TrimRight(b.String(), "\n")
}

func sourceURL(m moments.Moment) string {
	if m.Source.URLAtMoment != "" {
		return m.Source.URLAtMoment
	}
	return m.Source.URL
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
