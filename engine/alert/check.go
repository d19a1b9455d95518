package alert

import (
	"context"
	"log/slog"
	"time"

	"github.com/nikkaroraa/reddit-scout/engine/dedup"
	"github.com/nikkaroraa/reddit-scout/engine/domain"
	"github.com/nikkaroraa/reddit-scout/engine/sentiment"
	"github.com/nikkaroraa/reddit-scout/engine/signal"
	"github.com/nikkaroraa/reddit-scout/pkg/resilience"
)

// DefaultCheckLimit is the newest-posts page size per alert community.
const DefaultCheckLimit = 25

// Source yields one page of posts for a community.
type Source interface {
	FetchPage(ctx context.Context, community string, sort domain.Sort, window string, limit int) ([]domain.Post, error)
}

// Match is one new keyword hit surviving deduplication.
type Match struct {
	AlertID         string      `json:"alert_id"`
	MatchedKeywords []string    `json:"matched_keywords"`
	Post            domain.Post `json:"post"`
}

// Deps holds the checker's collaborators.
type Deps struct {
	Source Source
	Scorer *sentiment.Scorer
	Pacer  *resilience.Pacer
	Logger *slog.Logger
	Limit  int
	Now    func() time.Time
}

// Checker runs alert and competitor check cycles against a shared SeenSet.
// The caller persists alerts and the seen set once after the cycle.
type Checker struct {
	deps Deps
}

// NewChecker creates a Checker. Pacer, Logger, Limit, and Now default when
// unset.
func NewChecker(deps Deps) *Checker {
	if deps.Pacer == nil {
		deps.Pacer = resilience.NewPacer(resilience.DefaultInterval)
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Limit <= 0 {
		deps.Limit = DefaultCheckLimit
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Checker{deps: deps}
}

// CheckAlerts runs one cycle over every enabled alert. Posts whose IDs are
// already in seen are filtered out; survivors are marked seen and emitted.
// Each processed alert gets LastCheckedAt stamped and MatchCount incremented
// by its new matches. The returned slice is the full updated alert set, ready
// for a single SaveAll.
func (c *Checker) CheckAlerts(ctx context.Context, alerts []domain.KeywordAlert, seen *dedup.SeenSet) ([]domain.KeywordAlert, []Match) {
	updated := make([]domain.KeywordAlert, len(alerts))
	copy(updated, alerts)

	var matches []Match
	for i := range updated {
		a := &updated[i]
		if !a.Enabled {
			continue
		}

		newMatches := 0
		for _, community := range a.Communities {
			if err := c.deps.Pacer.Wait(ctx); err != nil {
				return updated, matches
			}
			posts, err := c.deps.Source.FetchPage(ctx, community, domain.SortNew, "", c.deps.Limit)
			if err != nil {
				c.deps.Logger.Warn("alert check: fetch failed, skipping community",
					"alert_id", a.ID, "community", community, "error", err)
				continue
			}

			for _, p := range posts {
				hits := signal.MatchKeywords(p, a.Keywords)
				if len(hits) == 0 {
					continue
				}
				key := dedup.AlertKey(p.ID)
				if seen.Has(key) {
					continue
				}
				seen.Mark(key)
				matches = append(matches, Match{
					AlertID:         a.ID,
					MatchedKeywords: hits,
					Post:            p,
				})
				newMatches++
			}
		}

		now := c.deps.Now().UTC()
		a.LastCheckedAt = &now
		a.MatchCount += newMatches
	}
	return updated, matches
}
