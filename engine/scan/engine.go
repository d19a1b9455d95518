// Package scan orchestrates a run over configured communities: fetch,
// categorize, score, select trending, and aggregate across communities. The
// community loop is strictly sequential with a pacing delay between source
// requests; one failing community is recorded and skipped, never fatal.
package scan

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/nikkaroraa/reddit-scout/engine/domain"
	"github.com/nikkaroraa/reddit-scout/engine/sentiment"
	"github.com/nikkaroraa/reddit-scout/engine/signal"
	"github.com/nikkaroraa/reddit-scout/pkg/fn"
	"github.com/nikkaroraa/reddit-scout/pkg/metrics"
	"github.com/nikkaroraa/reddit-scout/pkg/resilience"
)

const (
	// DefaultLimit is the page size per community fetch.
	DefaultLimit = 25
	// DefaultScoreThreshold qualifies a post as trending on score alone.
	DefaultScoreThreshold = 50
	// TrendingCommentMin qualifies a post as trending on comment count alone.
	TrendingCommentMin = 20
	// TopLimit caps each cross-community aggregate list.
	TopLimit = 20
)

// Source yields one page of posts for a community.
type Source interface {
	FetchPage(ctx context.Context, community string, sort domain.Sort, window string, limit int) ([]domain.Post, error)
}

// Searcher yields posts matching a query within a community.
type Searcher interface {
	Search(ctx context.Context, community, query string, limit int) ([]domain.Post, error)
}

// Options tunes a scan.
type Options struct {
	Limit          int
	Sort           domain.Sort
	Window         string
	ScoreThreshold int
	WithSentiment  bool
}

func (o Options) withDefaults() Options {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Sort == "" {
		o.Sort = domain.SortNew
	}
	if o.ScoreThreshold <= 0 {
		o.ScoreThreshold = DefaultScoreThreshold
	}
	return o
}

// CommunityResult is one community's slice of a scan. Error carries the fetch
// failure marker for that community; the rest of the scan proceeds.
type CommunityResult struct {
	Community     string               `json:"community"`
	Error         string               `json:"error,omitempty"`
	PostCount     int                  `json:"post_count"`
	PainPoints    []domain.SignalMatch `json:"pain_points"`
	Opportunities []domain.SignalMatch `json:"opportunities"`
	Trending      []domain.Post        `json:"trending"`
}

// Result is a full scan: per-community results plus cross-community
// aggregates sorted by score and truncated to TopLimit.
type Result struct {
	ScannedAt        time.Time            `json:"scanned_at"`
	Communities      []CommunityResult    `json:"communities"`
	TopPainPoints    []domain.SignalMatch `json:"top_pain_points"`
	TopOpportunities []domain.SignalMatch `json:"top_opportunities"`
	TopTrending      []domain.Post        `json:"top_trending"`
}

// Deps holds the engine's collaborators.
type Deps struct {
	Source      Source
	Pain        *signal.Matcher
	Opportunity *signal.Matcher
	Scorer      *sentiment.Scorer
	Pacer       *resilience.Pacer
	Metrics     *metrics.Registry
	Logger      *slog.Logger
}

// Engine runs scans.
type Engine struct {
	deps Deps
}

// NewEngine creates an Engine. Pacer and Metrics default when nil.
func NewEngine(deps Deps) *Engine {
	if deps.Pacer == nil {
		deps.Pacer = resilience.NewPacer(resilience.DefaultInterval)
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Engine{deps: deps}
}

// Scan iterates communities in the given order. Order only determines output
// ordering; each fetch is paced, and a per-community failure is recorded as
// an error marker while the remaining communities still run.
func (e *Engine) Scan(ctx context.Context, communities []string, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if err := domain.ValidateScanInput(communities, opts.Sort, opts.Window); err != nil {
		return nil, err
	}

	fetches := e.deps.Metrics.Counter("scout_fetches_total", "community page fetches attempted")
	fetchErrs := e.deps.Metrics.Counter("scout_fetch_errors_total", "community page fetches failed")
	painHits := e.deps.Metrics.Counter("scout_pain_matches_total", "posts matching the pain catalog")
	oppHits := e.deps.Metrics.Counter("scout_opportunity_matches_total", "posts matching the opportunity catalog")

	result := &Result{ScannedAt: time.Now().UTC()}

	for _, community := range communities {
		if err := e.deps.Pacer.Wait(ctx); err != nil {
			return nil, err
		}

		fetches.Inc()
		posts, err := e.deps.Source.FetchPage(ctx, community, opts.Sort, opts.Window, opts.Limit)
		if err != nil {
			fetchErrs.Inc()
			e.deps.Logger.Warn("scan: fetch failed, skipping community",
				"community", community, "error", err)
			result.Communities = append(result.Communities, CommunityResult{
				Community: community,
				Error:     err.Error(),
			})
			continue
		}

		cr := e.analyzeCommunity(community, posts, opts)
		painHits.Add(int64(len(cr.PainPoints)))
		oppHits.Add(int64(len(cr.Opportunities)))
		result.Communities = append(result.Communities, cr)
	}

	result.TopPainPoints = topMatches(collectMatches(result.Communities, func(c CommunityResult) []domain.SignalMatch { return c.PainPoints }))
	result.TopOpportunities = topMatches(collectMatches(result.Communities, func(c CommunityResult) []domain.SignalMatch { return c.Opportunities }))
	result.TopTrending = topPosts(result.Communities)
	return result, nil
}

func (e *Engine) analyzeCommunity(community string, posts []domain.Post, opts Options) CommunityResult {
	cr := CommunityResult{Community: community, PostCount: len(posts)}

	for _, p := range posts {
		if match := e.deps.Pain.Categorize(p); match != nil {
			e.annotate(match, opts)
			cr.PainPoints = append(cr.PainPoints, *match)
		}
		if match := e.deps.Opportunity.Categorize(p); match != nil {
			e.annotate(match, opts)
			cr.Opportunities = append(cr.Opportunities, *match)
		}
	}

	cr.Trending = fn.Filter(posts, func(p domain.Post) bool {
		return p.Score >= opts.ScoreThreshold || p.NumComments >= TrendingCommentMin
	})
	sortByScore(cr.Trending, func(p domain.Post) int { return p.Score })
	return cr
}

func (e *Engine) annotate(match *domain.SignalMatch, opts Options) {
	if !opts.WithSentiment || e.deps.Scorer == nil {
		return
	}
	s := e.deps.Scorer.Score(match.Title + " " + match.Body)
	match.Sentiment = &s
}

func collectMatches(communities []CommunityResult, pick func(CommunityResult) []domain.SignalMatch) []domain.SignalMatch {
	var all []domain.SignalMatch
	for _, c := range communities {
		all = append(all, pick(c)...)
	}
	return all
}

func topMatches(all []domain.SignalMatch) []domain.SignalMatch {
	sortByScore(all, func(m domain.SignalMatch) int { return m.Score })
	return fn.Truncate(all, TopLimit)
}

func topPosts(communities []CommunityResult) []domain.Post {
	var all []domain.Post
	for _, c := range communities {
		all = append(all, c.Trending...)
	}
	sortByScore(all, func(p domain.Post) int { return p.Score })
	return fn.Truncate(all, TopLimit)
}

// sortByScore sorts descending by score; the stable sort keeps original fetch
// order for ties.
func sortByScore[T any](items []T, score func(T) int) {
	sort.SliceStable(items, func(i, j int) bool {
		return score(items[i]) > score(items[j])
	})
}
