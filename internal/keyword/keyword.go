// Package keyword reduces free text to the significant search terms used to
// build full-text match expressions. Extraction is a pure function of the
// input: lowercase tokens of length >= 3, stopwords removed, first-occurrence
// order preserved.
package keyword

import (
	"regexp"
	"strings"
)

var tokenRe = regexp.MustCompile(`[a-zA-Z']{3,}`)

// Extract returns the significant keywords of text, deduplicated in
// first-occurrence order. Empty or all-stopword input yields nil; callers
// treat that as a usage error, never as match-everything.
func Extract(text string) []string {
	words := tokenRe.FindAllString(strings.ToLower(text), -1)

	seen := make(map[string]struct{}, len(words))
	var keywords []string
	for _, w := range words {
		w = strings.Trim(w, "'")
		if len(w) < 3 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		keywords = append(keywords, w)
	}
	return keywords
}

// IsStopword reports whether w (lowercased) is in the stopword set.
func IsStopword(w string) bool {
	_, ok := stopwords[strings.ToLower(w)]
	return ok
}
