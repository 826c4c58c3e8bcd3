package search

import (
	"regexp"
	"strings"
)

var punctuation = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// lower folds case rune by rune, so rune offsets of s and lower(s) line up.
func lower(s string) string { return strings.ToLower(s) }

// Normalize replaces punctuation with spaces, lower-cases and collapses whitespace.
func Normalize(query string) string {
	q := punctuation.ReplaceAllString(lower(query), " ")
	return strings.Join(strings.Fields(q), " ")
}

// Expand returns the query tokens plus every dictionary concept one of whose
// phrases occurs in the normalized query. Phrases are compared as written:
// the query is lower-cased, so upper-case phrases ("EV", "PER") never match.
// The result is lower-cased and free of duplicates, in first-added order.
func (e *Engine) Expand(normalized string) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(words ...string) {
		for _, w := range words {
			w = lower(w)
			if w == "" {
				continue
			}
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}

	add(strings.Fields(normalized)...)
	for _, table := range [][]Concept{e.dict.Synonyms, e.dict.Industries} {
		for _, c := range table {
			if containsAny(normalized, c.Phrases) {
				add(c.Key)
				add(c.Phrases...)
			}
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
