package scan

import (
	"context"
	"strings"
	"time"

	"github.com/nikkaroraa/reddit-scout/engine/domain"
)

// ScoredPost is a search hit with optional sentiment.
type ScoredPost struct {
	domain.Post
	Sentiment *domain.Sentiment `json:"sentiment,omitempty"`
}

// SearchResult is one community's search hits.
type SearchResult struct {
	Community string       `json:"community"`
	Error     string       `json:"error,omitempty"`
	Posts     []ScoredPost `json:"posts"`
}

// SearchReport aggregates a query across communities.
type SearchReport struct {
	Query       string         `json:"query"`
	SearchedAt  time.Time      `json:"searched_at"`
	Communities []SearchResult `json:"communities"`
}

// Search runs a subreddit-restricted query over each community, paced like a
// scan, annotating hits with sentiment when enabled.
func (e *Engine) Search(ctx context.Context, searcher Searcher, communities []string, query string, opts Options) (*SearchReport, error) {
	opts = opts.withDefaults()
	if strings.TrimSpace(query) == "" {
		return nil, domain.NewValidationError("query", query, domain.ErrEmptyQuery)
	}
	if err := domain.ValidateScanInput(communities, opts.Sort, opts.Window); err != nil {
		return nil, err
	}

	report := &SearchReport{Query: query, SearchedAt: time.Now().UTC()}
	for _, community := range communities {
		if err := e.deps.Pacer.Wait(ctx); err != nil {
			return nil, err
		}

		posts, err := searcher.Search(ctx, community, query, opts.Limit)
		if err != nil {
			e.deps.Logger.Warn("search: fetch failed, skipping community",
				"community", community, "error", err)
			report.Communities = append(report.Communities, SearchResult{
				Community: community,
				Error:     err.Error(),
			})
			continue
		}

		sr := SearchResult{Community: community, Posts: make([]ScoredPost, 0, len(posts))}
		for _, p := range posts {
			sp := ScoredPost{Post: p}
			if opts.WithSentiment && e.deps.Scorer != nil {
				s := e.deps.Scorer.Score(p.Title + " " + p.Body)
				sp.Sentiment = &s
			}
			sr.Posts = append(sr.Posts, sp)
		}
		report.Communities = append(report.Communities, sr)
	}
	return report, nil
}
