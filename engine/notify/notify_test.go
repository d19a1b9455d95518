package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/nikkaroraa/reddit-scout/engine/alert"
	"github.com/nikkaroraa/reddit-scout/engine/dedup"
	"github.com/nikkaroraa/reddit-scout/engine/domain"
	"github.com/nikkaroraa/reddit-scout/engine/lexicon"
	"github.com/nikkaroraa/reddit-scout/engine/sentiment"
	"github.com/nikkaroraa/reddit-scout/pkg/resilience"
	"github.com/nikkaroraa/reddit-scout/pkg/store"
)

type fakeSource struct {
	pages map[string][]domain.Post
}

func (f *fakeSource) FetchPage(_ context.Context, community string, _ domain.Sort, _ string, _ int) ([]domain.Post, error) {
	return f.pages[community], nil
}

func newTestRunner(t *testing.T, src alert.Source) *Runner {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.New(t.TempDir(), log)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	checker := alert.NewChecker(alert.Deps{
		Source: src,
		Scorer: sentiment.NewScorer(lexicon.Lexicon{
			Positive:  []string{"love"},
			Negative:  []string{"hate"},
			Negations: []string{"not"},
		}),
		Pacer:  resilience.NewPacer(time.Millisecond),
		Logger: log,
	})
	return &Runner{
		Registry: alert.NewRegistry(st),
		Checker:  checker,
		Store:    st,
		Competitors: domain.CompetitorConfig{
			Competitors: []string{"hubspot"},
			Communities: []string{"SaaS"},
		},
		Logger: log,
	}
}

func TestRunCombinedCycle(t *testing.T) {
	src := &fakeSource{pages: map[string][]domain.Post{
		"SaaS": {
			{ID: "p1", Title: "Looking for a CRM, tried HubSpot", Community: "SaaS"},
			{ID: "p2", Title: "nothing relevant", Community: "SaaS"},
		},
	}}
	r := newTestRunner(t, src)
	if _, err := r.Registry.Add([]string{"looking for"}, []string{"SaaS"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Matches) != 1 || report.Matches[0].Post.ID != "p1" {
		t.Fatalf("matches = %+v", report.Matches)
	}
	if len(report.Competitors.Mentions) != 1 {
		t.Fatalf("mentions = %+v", report.Competitors.Mentions)
	}
	if report.Message == "" || report.Message == "No new matches." {
		t.Errorf("message = %q", report.Message)
	}

	// The shared seen set is persisted once with both namespaces in it.
	var keys []string
	if !r.Store.Load(alert.SeenKey, &keys) {
		t.Fatal("seen set not persisted")
	}
	restored := dedup.FromKeys(keys, 0)
	if !restored.Has(dedup.AlertKey("p1")) || !restored.Has(dedup.CompetitorKey("p1")) {
		t.Errorf("persisted keys = %v, want both namespaces", keys)
	}

	// Alert bookkeeping persisted too.
	alerts := r.Registry.List()
	if alerts[0].MatchCount != 1 || alerts[0].LastCheckedAt == nil {
		t.Errorf("persisted alert = %+v", alerts[0])
	}

	// Second run sees everything already marked.
	report, err = r.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if len(report.Matches) != 0 || len(report.Competitors.Mentions) != 0 {
		t.Errorf("second run = %+v", report)
	}
	if report.Message != "No new matches." {
		t.Errorf("second run message = %q", report.Message)
	}
}

func TestRunAlertsOnly(t *testing.T) {
	src := &fakeSource{pages: map[string][]domain.Post{
		"SaaS": {{ID: "p1", Title: "need help with HubSpot", Community: "SaaS"}},
	}}
	r := newTestRunner(t, src)
	r.Registry.Add([]string{"need help"}, []string{"SaaS"})

	matches, err := r.RunAlerts(context.Background())
	if err != nil {
		t.Fatalf("RunAlerts: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("matches = %+v", matches)
	}

	// The alert-only cycle must leave the competitor namespace untouched, so
	// a later competitor run still reports the mention.
	report, err := r.RunCompetitors(context.Background())
	if err != nil {
		t.Fatalf("RunCompetitors: %v", err)
	}
	if len(report.Mentions) != 1 {
		t.Errorf("mentions = %+v, want the hubspot hit", report.Mentions)
	}
}

func TestFormatMessage(t *testing.T) {
	match := func(i int) alert.Match {
		return alert.Match{
			AlertID:         "a1",
			MatchedKeywords: []string{"crm"},
			Post:            domain.Post{ID: fmt.Sprintf("p%d", i), Title: fmt.Sprintf("post %d", i), Community: "SaaS"},
		}
	}
	mention := func(i int) alert.Mention {
		return alert.Mention{
			Competitor: "hubspot",
			Context:    "context",
			Post:       domain.Post{ID: fmt.Sprintf("m%d", i), Community: "SaaS"},
		}
	}

	t.Run("empty", func(t *testing.T) {
		if got := FormatMessage(nil, nil); got != "No new matches." {
			t.Errorf("message = %q", got)
		}
	})

	t.Run("under the caps", func(t *testing.T) {
		got := FormatMessage([]alert.Match{match(1)}, []alert.Mention{mention(1)})
		if !strings.Contains(got, "New keyword matches (1):") ||
			!strings.Contains(got, "Competitor mentions (1):") {
			t.Errorf("message = %q", got)
		}
		if strings.Contains(got, "more") {
			t.Errorf("unexpected truncation: %q", got)
		}
	})

	t.Run("truncated with trailing counts", func(t *testing.T) {
		var matches []alert.Match
		for i := 0; i < 8; i++ {
			matches = append(matches, match(i))
		}
		var mentions []alert.Mention
		for i := 0; i < 5; i++ {
			mentions = append(mentions, mention(i))
		}

		got := FormatMessage(matches, mentions)
		if !strings.Contains(got, "...and 3 more") {
			t.Errorf("missing keyword overflow line: %q", got)
		}
		if !strings.Contains(got, "...and 2 more") {
			t.Errorf("missing mention overflow line: %q", got)
		}
		if n := strings.Count(got, "- "); n != MaxKeywordLines+MaxMentionLines {
			t.Errorf("line count = %d, want %d", n, MaxKeywordLines+MaxMentionLines)
		}
	})
}
