// Package lexicon holds the static signal catalogs and sentiment word lists.
// Catalogs are plain data handed to matcher/scorer constructors so tests can
// substitute alternates; nothing in here mutates after construction.
package lexicon

// Catalog maps category name to the literal phrases that signal it.
type Catalog struct {
	Categories map[string][]string
}

// CategoryNames returns the category names in sorted order for deterministic
// iteration.
func (c Catalog) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for name := range c.Categories {
		names = append(names, name)
	}
	sortStrings(names)
	return names
}

// Phrases returns all phrases across categories, deduplicated.
func (c Catalog) Phrases() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, name := range c.CategoryNames() {
		for _, p := range c.Categories[name] {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				out = append(out, p)
			}
		}
	}
	return out
}

func sortStrings(s []string) {
	for i := 0; i < len(s); i++ {
		for j := i + 1; j < len(s); j++ {
			if s[j] < s[i] {
				s[i], s[j] = s[j], s[i]
			}
		}
	}
}

// PainCatalog is the default catalog of pain-point signals: help-seeking,
// frustration, pricing complaints, feature requests, and competitor
// comparison shopping.
func PainCatalog() Catalog {
	return Catalog{Categories: map[string][]string{
		"help": {
			"looking for", "need help", "how do i", "is there a way",
			"any recommendations", "can anyone recommend", "what do you use",
			"need advice", "struggling with", "can't figure out",
		},
		"frustration": {
			"frustrated", "annoying", "hate that", "so slow", "keeps crashing",
			"doesn't work", "waste of time", "fed up", "driving me crazy",
			"terrible support",
		},
		"pricing": {
			"too expensive", "overpriced", "pricing is", "cheaper alternative",
			"price increase", "can't afford", "not worth the price",
			"subscription fatigue", "hidden fees",
		},
		"feature_request": {
			"wish it had", "missing feature", "would be great if",
			"feature request", "why doesn't it", "should support",
			"lacks support for", "no integration",
		},
		"alternatives": {
			"alternative to", "vs", "compared to", "switching from",
			"migrating from", "better than", "instead of", "replacement for",
		},
	}}
}

// OpportunityCatalog is the narrower catalog of opportunity signals:
// hiring and paid-gig phrases.
func OpportunityCatalog() Catalog {
	return Catalog{Categories: map[string][]string{
		"hiring": {
			"hiring", "looking to hire", "we're hiring", "job opening",
			"freelance", "paid gig", "contract work", "will pay",
			"budget for", "consulting",
		},
	}}
}

// Lexicon holds sentiment word lists plus negation tokens.
type Lexicon struct {
	Positive  []string
	Negative  []string
	Negations []string
}

// SentimentLexicon is the default fixed sentiment lexicon.
func SentimentLexicon() Lexicon {
	return Lexicon{
		Positive: []string{
			"love", "great", "awesome", "excellent", "amazing", "good",
			"fantastic", "helpful", "perfect", "happy", "recommend", "best",
			"solid", "reliable", "smooth", "easy", "intuitive", "fast",
			"impressed", "works",
		},
		Negative: []string{
			"hate", "terrible", "awful", "horrible", "bad", "worst",
			"broken", "buggy", "slow", "crash", "crashes", "useless",
			"frustrating", "frustrated", "annoying", "disappointed",
			"expensive", "overpriced", "scam", "unreliable", "confusing",
			"painful",
		},
		Negations: []string{
			"not", "no", "never", "don't", "doesn't", "didn't", "won't",
			"wouldn't", "can't", "cannot", "couldn't", "isn't", "aren't",
			"wasn't", "weren't", "hardly", "barely",
		},
	}
}
