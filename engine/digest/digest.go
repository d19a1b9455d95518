// Package digest aggregates a time-windowed pass over communities into a
// summary snapshot. A digest is one fetch pass: it never consults or mutates
// dedup state, so the same post can appear in consecutive digests. The latest
// snapshot is persisted wholesale, replacing the previous one.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/nikkaroraa/reddit-scout/engine/domain"
	"github.com/nikkaroraa/reddit-scout/engine/sentiment"
	"github.com/nikkaroraa/reddit-scout/engine/signal"
	"github.com/nikkaroraa/reddit-scout/pkg/fn"
	"github.com/nikkaroraa/reddit-scout/pkg/resilience"
)

const (
	// FetchLimit is the fixed page size per community fetch.
	FetchLimit = 100
	// TopPostsLimit bounds the top-engagement list.
	TopPostsLimit = 10
	// Key is the store document holding the latest digest.
	Key = "digest"
)

// Source yields one page of posts for a community.
type Source interface {
	FetchPage(ctx context.Context, community string, sort domain.Sort, window string, limit int) ([]domain.Post, error)
}

// Totals are the cross-community counts. Sentiment is distributed over
// pain-point-matched posts only; Categories counts each post once per
// category it matched.
type Totals struct {
	PostCount  int                           `json:"post_count"`
	Sentiment  map[domain.SentimentLabel]int `json:"sentiment"`
	Categories map[string]int                `json:"categories"`
}

// RankedPost is a post with its composite engagement score.
type RankedPost struct {
	domain.Post
	Engagement int `json:"engagement"`
}

// CommunityStats is one community's slice of the digest.
type CommunityStats struct {
	Community     string  `json:"community"`
	Error         string  `json:"error,omitempty"`
	PostCount     int     `json:"post_count"`
	TotalScore    int     `json:"total_score"`
	AverageScore  float64 `json:"average_score"`
	PainPoints    int     `json:"pain_points"`
	Opportunities int     `json:"opportunities"`
}

// Digest is the persisted snapshot.
type Digest struct {
	GeneratedAt  time.Time        `json:"generated_at"`
	Window       string           `json:"window"`
	Communities  []string         `json:"communities"`
	Totals       Totals           `json:"totals"`
	TopPosts     []RankedPost     `json:"top_posts"`
	PerCommunity []CommunityStats `json:"per_community"`
}

// Deps holds the builder's collaborators.
type Deps struct {
	Source      Source
	Pain        *signal.Matcher
	Opportunity *signal.Matcher
	Scorer      *sentiment.Scorer
	Pacer       *resilience.Pacer
	Logger      *slog.Logger
}

// Builder builds digests.
type Builder struct {
	deps Deps
	now  func() time.Time
}

// NewBuilder creates a Builder.
func NewBuilder(deps Deps) *Builder {
	if deps.Pacer == nil {
		deps.Pacer = resilience.NewPacer(resilience.DefaultInterval)
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Builder{deps: deps, now: time.Now}
}

// Build fetches each community once, keeps posts created within the last
// windowHours, and aggregates counts, distributions, and top engagement.
func (b *Builder) Build(ctx context.Context, communities []string, windowHours int) (*Digest, error) {
	if windowHours <= 0 {
		return nil, domain.NewValidationError("window_hours", fmt.Sprint(windowHours), domain.ErrBadWindowHours)
	}
	if err := domain.ValidateScanInput(communities, domain.SortNew, ""); err != nil {
		return nil, err
	}

	now := b.now().UTC()
	cutoff := now.Add(-time.Duration(windowHours) * time.Hour)

	d := &Digest{
		GeneratedAt: now,
		Window:      fmt.Sprintf("%dh", windowHours),
		Communities: communities,
		Totals: Totals{
			Sentiment:  make(map[domain.SentimentLabel]int),
			Categories: make(map[string]int),
		},
	}

	var ranked []RankedPost
	for _, community := range communities {
		if err := b.deps.Pacer.Wait(ctx); err != nil {
			return nil, err
		}
		posts, err := b.deps.Source.FetchPage(ctx, community, domain.SortNew, "", FetchLimit)
		if err != nil {
			b.deps.Logger.Warn("digest: fetch failed, skipping community",
				"community", community, "error", err)
			d.PerCommunity = append(d.PerCommunity, CommunityStats{
				Community: community,
				Error:     err.Error(),
			})
			continue
		}

		inWindow := fn.Filter(posts, func(p domain.Post) bool {
			return !p.CreatedAt.Before(cutoff) && !p.CreatedAt.After(now)
		})

		stats := CommunityStats{Community: community, PostCount: len(inWindow)}
		for _, p := range inWindow {
			stats.TotalScore += p.Score
			ranked = append(ranked, RankedPost{Post: p, Engagement: engagement(p)})

			if match := b.deps.Pain.Categorize(p); match != nil {
				stats.PainPoints++
				s := b.deps.Scorer.Score(p.Title + " " + p.Body)
				d.Totals.Sentiment[s.Label]++
				for category := range match.Categories {
					d.Totals.Categories[category]++
				}
			}
			if match := b.deps.Opportunity.Categorize(p); match != nil {
				stats.Opportunities++
				for category := range match.Categories {
					d.Totals.Categories[category]++
				}
			}
		}
		if stats.PostCount > 0 {
			stats.AverageScore = float64(stats.TotalScore) / float64(stats.PostCount)
		}
		d.Totals.PostCount += stats.PostCount
		d.PerCommunity = append(d.PerCommunity, stats)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Engagement > ranked[j].Engagement
	})
	d.TopPosts = fn.Truncate(ranked, TopPostsLimit)
	return d, nil
}

// engagement is the composite ranking score: raw score plus double-weighted
// comment count.
func engagement(p domain.Post) int {
	return p.Score + 2*p.NumComments
}
