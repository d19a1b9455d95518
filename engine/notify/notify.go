// Package notify renders check-cycle results into a compact message and runs
// the combined alert + competitor cycle. The two checks touch disjoint seen
// namespaces and independent registry state, so they fan out concurrently —
// but the seen set is read once, shared in memory, and written once, never
// two independent read-modify-write cycles.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nikkaroraa/reddit-scout/engine/alert"
	"github.com/nikkaroraa/reddit-scout/engine/dedup"
	"github.com/nikkaroraa/reddit-scout/engine/domain"
	"github.com/nikkaroraa/reddit-scout/pkg/fn"
	"github.com/nikkaroraa/reddit-scout/pkg/store"
)

// Message bounds: anything beyond these collapses into a trailing count.
const (
	MaxKeywordLines = 5
	MaxMentionLines = 3
)

// Report is the outcome of one notify run.
type Report struct {
	RanAt       time.Time               `json:"ran_at"`
	Matches     []alert.Match           `json:"matches"`
	Competitors *alert.CompetitorReport `json:"competitors,omitempty"`
	Message     string                  `json:"message"`
}

// Runner wires the registry, checker, and store into the combined cycle.
type Runner struct {
	Registry    *alert.Registry
	Checker     *alert.Checker
	Store       *store.Store
	Competitors domain.CompetitorConfig
	SeenCap     int
	Logger      *slog.Logger
}

// loadSeen reads the persisted seen set exactly once.
func (r *Runner) loadSeen() *dedup.SeenSet {
	var keys []string
	r.Store.Load(alert.SeenKey, &keys)
	return dedup.FromKeys(keys, r.SeenCap)
}

func (r *Runner) saveSeen(seen *dedup.SeenSet) error {
	return r.Store.Save(alert.SeenKey, seen.Snapshot())
}

// Run executes the keyword-alert and competitor checks concurrently over a
// shared in-memory seen set, then persists alerts and seen state once each.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	seen := r.loadSeen()
	alerts := r.Registry.List()

	var (
		updated []domain.KeywordAlert
		matches []alert.Match
		comp    *alert.CompetitorReport
	)
	fn.FanOut(
		func() struct{} {
			updated, matches = r.Checker.CheckAlerts(ctx, alerts, seen)
			return struct{}{}
		},
		func() struct{} {
			comp = r.Checker.CheckCompetitors(ctx, r.Competitors, seen)
			return struct{}{}
		},
	)

	if err := r.Registry.SaveAll(updated); err != nil {
		return nil, fmt.Errorf("save alerts: %w", err)
	}
	if err := r.saveSeen(seen); err != nil {
		return nil, fmt.Errorf("save seen set: %w", err)
	}

	return &Report{
		RanAt:       time.Now().UTC(),
		Matches:     matches,
		Competitors: comp,
		Message:     FormatMessage(matches, comp.Mentions),
	}, nil
}

// RunAlerts executes only the keyword-alert cycle.
func (r *Runner) RunAlerts(ctx context.Context) ([]alert.Match, error) {
	seen := r.loadSeen()
	updated, matches := r.Checker.CheckAlerts(ctx, r.Registry.List(), seen)
	if err := r.Registry.SaveAll(updated); err != nil {
		return nil, fmt.Errorf("save alerts: %w", err)
	}
	if err := r.saveSeen(seen); err != nil {
		return nil, fmt.Errorf("save seen set: %w", err)
	}
	return matches, nil
}

// RunCompetitors executes only the competitor cycle.
func (r *Runner) RunCompetitors(ctx context.Context) (*alert.CompetitorReport, error) {
	seen := r.loadSeen()
	report := r.Checker.CheckCompetitors(ctx, r.Competitors, seen)
	if err := r.saveSeen(seen); err != nil {
		return nil, fmt.Errorf("save seen set: %w", err)
	}
	return report, nil
}

// FormatMessage renders matches and mentions for an external delivery
// channel: at most MaxKeywordLines keyword matches and MaxMentionLines
// competitor mentions, with a trailing "...and N more" when truncated.
func FormatMessage(matches []alert.Match, mentions []alert.Mention) string {
	if len(matches) == 0 && len(mentions) == 0 {
		return "No new matches."
	}

	var b strings.Builder
	if len(matches) > 0 {
		fmt.Fprintf(&b, "New keyword matches (%d):\n", len(matches))
		for i, m := range matches {
			if i == MaxKeywordLines {
				fmt.Fprintf(&b, "...and %d more\n", len(matches)-MaxKeywordLines)
				break
			}
			fmt.Fprintf(&b, "- [%s] %s (%s)\n",
				m.Post.Community, m.Post.Title, strings.Join(m.MatchedKeywords, ", "))
		}
	}
	if len(mentions) > 0 {
		fmt.Fprintf(&b, "Competitor mentions (%d):\n", len(mentions))
		for i, m := range mentions {
			if i == MaxMentionLines {
				fmt.Fprintf(&b, "...and %d more\n", len(mentions)-MaxMentionLines)
				break
			}
			fmt.Fprintf(&b, "- %s in [%s]: %s\n", m.Competitor, m.Post.Community, m.Context)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
