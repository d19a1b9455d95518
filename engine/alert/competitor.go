package alert

import (
	"context"
	"time"

	"github.com/nikkaroraa/reddit-scout/engine/dedup"
	"github.com/nikkaroraa/reddit-scout/engine/domain"
	"github.com/nikkaroraa/reddit-scout/engine/signal"
)

// mentionContextPad is how much surrounding text each mention carries.
const mentionContextPad = 30

// Mention is one competitor name spotted in a new post, with surrounding
// context for human review.
type Mention struct {
	Competitor string           `json:"competitor"`
	Context    string           `json:"context"`
	Post       domain.Post      `json:"post"`
	Sentiment  domain.Sentiment `json:"sentiment"`
}

// CompetitorSummary tallies one competitor's mentions by sentiment.
type CompetitorSummary struct {
	Mentions int `json:"mentions"`
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// CompetitorReport is the outcome of one competitor check cycle.
type CompetitorReport struct {
	CheckedAt    time.Time                    `json:"checked_at"`
	Mentions     []Mention                    `json:"mentions"`
	ByCompetitor map[string]CompetitorSummary `json:"by_competitor"`
}

// CheckCompetitors scans the configured communities for competitor-name
// mentions, namespaced in the seen set so they never collide with keyword
// alert dedup state. Posts already seen under the competitor namespace are
// skipped; new ones are marked.
func (c *Checker) CheckCompetitors(ctx context.Context, cfg domain.CompetitorConfig, seen *dedup.SeenSet) *CompetitorReport {
	report := &CompetitorReport{
		CheckedAt:    c.deps.Now().UTC(),
		ByCompetitor: make(map[string]CompetitorSummary),
	}
	if len(cfg.Competitors) == 0 || len(cfg.Communities) == 0 {
		return report
	}

	for _, community := range cfg.Communities {
		if err := c.deps.Pacer.Wait(ctx); err != nil {
			return report
		}
		posts, err := c.deps.Source.FetchPage(ctx, community, domain.SortNew, "", c.deps.Limit)
		if err != nil {
			c.deps.Logger.Warn("competitor check: fetch failed, skipping community",
				"community", community, "error", err)
			continue
		}

		for _, p := range posts {
			hits := signal.MatchKeywords(p, cfg.Competitors)
			if len(hits) == 0 {
				continue
			}
			key := dedup.CompetitorKey(p.ID)
			if seen.Has(key) {
				continue
			}
			seen.Mark(key)

			text := p.Title + " " + p.Body
			s := c.deps.Scorer.Score(text)
			for _, name := range hits {
				report.Mentions = append(report.Mentions, Mention{
					Competitor: name,
					Context:    signal.ContextWindow(text, name, mentionContextPad),
					Post:       p,
					Sentiment:  s,
				})
				sum := report.ByCompetitor[name]
				sum.Mentions++
				switch s.Label {
				case domain.SentimentPositive:
					sum.Positive++
				case domain.SentimentNegative:
					sum.Negative++
				default:
					sum.Neutral++
				}
				report.ByCompetitor[name] = sum
			}
		}
	}
	return report
}
