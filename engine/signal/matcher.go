// Package signal matches post text against a signal catalog and assigns
// categories. Matching is plain substring over lowercased title+body: catalog
// phrases are multi-word fragments like "looking for" where word-boundary
// matching would miss context, so the occasional substring false positive is
// an accepted trade-off.
package signal

import (
	"strings"

	"github.com/nikkaroraa/reddit-scout/engine/domain"
	"github.com/nikkaroraa/reddit-scout/engine/lexicon"
)

// Matcher categorizes posts against an immutable catalog.
type Matcher struct {
	catalog lexicon.Catalog
	names   []string
}

// NewMatcher builds a Matcher for the given catalog.
func NewMatcher(catalog lexicon.Catalog) *Matcher {
	return &Matcher{catalog: catalog, names: catalog.CategoryNames()}
}

// Categorize returns the SignalMatch for p, or nil when no catalog phrase
// occurs in the post text. A post may land in several categories at once;
// assignment is non-exclusive.
func (m *Matcher) Categorize(p domain.Post) *domain.SignalMatch {
	text := strings.ToLower(p.Title + " " + p.Body)

	var matched []string
	seen := make(map[string]struct{})
	categories := make(map[string][]string)

	for _, name := range m.names {
		for _, phrase := range m.catalog.Categories[name] {
			if !strings.Contains(text, strings.ToLower(phrase)) {
				continue
			}
			categories[name] = append(categories[name], phrase)
			if _, ok := seen[phrase]; !ok {
				seen[phrase] = struct{}{}
				matched = append(matched, phrase)
			}
		}
	}

	if len(matched) == 0 {
		return nil
	}
	return &domain.SignalMatch{
		Post:           p,
		MatchedSignals: matched,
		Categories:     categories,
	}
}

// MatchKeywords reports which of the given keywords occur as substrings in
// the lowercased title+body. This is the simpler matching used by keyword
// alerts and competitor tracking, bypassing the category system.
func MatchKeywords(p domain.Post, keywords []string) []string {
	text := strings.ToLower(p.Title + " " + p.Body)
	var hits []string
	for _, kw := range keywords {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k == "" {
			continue
		}
		if strings.Contains(text, k) {
			hits = append(hits, kw)
		}
	}
	return hits
}

// ContextWindow returns up to pad characters of surrounding text on each side
// of the first occurrence of needle in haystack, for human review of a match.
// Returns "" when needle is absent.
func ContextWindow(haystack, needle string, pad int) string {
	lower := strings.ToLower(haystack)
	idx := strings.Index(lower, strings.ToLower(needle))
	if idx < 0 {
		return ""
	}
	start := idx - pad
	if start < 0 {
		start = 0
	}
	end := idx + len(needle) + pad
	if end > len(haystack) {
		end = len(haystack)
	}
	return strings.TrimSpace(haystack[start:end])
}
