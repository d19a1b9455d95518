// Package sentiment scores free text against a fixed lexicon. The scorer is a
// pure function of its input: no model, no state, deterministic output.
package sentiment

import (
	"strings"
	"unicode"

	"github.com/nikkaroraa/reddit-scout/engine/domain"
	"github.com/nikkaroraa/reddit-scout/engine/lexicon"
)

// Label thresholds on the compound score. Boundary values are inclusive.
const (
	positiveThreshold = 0.2
	negativeThreshold = -0.2
)

// Scorer counts lexicon hits with a local bigram negation heuristic.
type Scorer struct {
	positive  map[string]bool
	negative  map[string]bool
	negations map[string]bool
	posStems  []string
	negStems  []string
}

// NewScorer builds a Scorer from the given lexicon.
func NewScorer(lex lexicon.Lexicon) *Scorer {
	s := &Scorer{
		positive:  make(map[string]bool, len(lex.Positive)),
		negative:  make(map[string]bool, len(lex.Negative)),
		negations: make(map[string]bool, len(lex.Negations)),
	}
	for _, w := range lex.Positive {
		w = strings.ToLower(w)
		s.positive[w] = true
		s.posStems = append(s.posStems, w)
	}
	for _, w := range lex.Negative {
		w = strings.ToLower(w)
		s.negative[w] = true
		s.negStems = append(s.negStems, w)
	}
	for _, w := range lex.Negations {
		s.negations[strings.ToLower(w)] = true
	}
	return s
}

// Score computes the sentiment of text. Lexicon entries count on whole-word
// matches; a repeated word counts once per occurrence. When a negation token
// immediately precedes a word containing a lexicon stem, one hit is flipped
// to the opposite side. Empty or hit-free text is neutral with compound 0.
func (s *Scorer) Score(text string) domain.Sentiment {
	words := tokenize(text)

	pos, neg := 0, 0
	for _, w := range words {
		if s.positive[w] {
			pos++
		}
		if s.negative[w] {
			neg++
		}
	}

	// Bigram negation: "not good" flips one positive hit to negative,
	// "never crashes" flips the other way.
	for i := 0; i+1 < len(words); i++ {
		if !s.negations[words[i]] {
			continue
		}
		next := words[i+1]
		if containsStem(next, s.posStems) {
			pos--
			neg++
		} else if containsStem(next, s.negStems) {
			neg--
			pos++
		}
	}
	if pos < 0 {
		pos = 0
	}
	if neg < 0 {
		neg = 0
	}

	compound := 0.0
	if pos+neg > 0 {
		compound = float64(pos-neg) / float64(pos+neg)
	}

	return domain.Sentiment{
		Label:        labelFor(compound),
		Compound:     compound,
		PositiveHits: pos,
		NegativeHits: neg,
	}
}

func labelFor(compound float64) domain.SentimentLabel {
	switch {
	case compound >= positiveThreshold:
		return domain.SentimentPositive
	case compound <= negativeThreshold:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

// tokenize lowercases and splits text into word tokens, keeping apostrophes
// inside contractions so "don't" survives as one token.
func tokenize(text string) []string {
	lower := strings.ToLower(text)
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

func containsStem(word string, stems []string) bool {
	for _, stem := range stems {
		if strings.Contains(word, stem) {
			return true
		}
	}
	return false
}
