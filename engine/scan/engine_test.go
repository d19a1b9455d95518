package scan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nikkaroraa/reddit-scout/engine/domain"
	"github.com/nikkaroraa/reddit-scout/engine/lexicon"
	"github.com/nikkaroraa/reddit-scout/engine/sentiment"
	"github.com/nikkaroraa/reddit-scout/engine/signal"
	"github.com/nikkaroraa/reddit-scout/pkg/resilience"
)

type fakeSource struct {
	pages map[string][]domain.Post
	errs  map[string]error
	calls []string
}

func (f *fakeSource) FetchPage(_ context.Context, community string, _ domain.Sort, _ string, _ int) ([]domain.Post, error) {
	f.calls = append(f.calls, community)
	if err := f.errs[community]; err != nil {
		return nil, err
	}
	return f.pages[community], nil
}

func testEngine(src Source) *Engine {
	return NewEngine(Deps{
		Source: src,
		Pain: signal.NewMatcher(lexicon.Catalog{Categories: map[string][]string{
			"help": {"looking for"},
		}}),
		Opportunity: signal.NewMatcher(lexicon.Catalog{Categories: map[string][]string{
			"hiring": {"hiring"},
		}}),
		Scorer: sentiment.NewScorer(lexicon.Lexicon{
			Positive:  []string{"love"},
			Negative:  []string{"hate"},
			Negations: []string{"not"},
		}),
		Pacer: resilience.NewPacer(time.Millisecond),
	})
}

func p(id string, score, comments int, title string) domain.Post {
	return domain.Post{ID: id, Title: title, Score: score, NumComments: comments, Community: "SaaS"}
}

func TestScanTrendingByScore(t *testing.T) {
	src := &fakeSource{pages: map[string][]domain.Post{
		"SaaS": {
			p("a", 5, 0, "quiet post"),
			p("b", 100, 0, "big post"),
			p("c", 30, 0, "medium post"),
		},
	}}
	result, err := testEngine(src).Scan(context.Background(), []string{"SaaS"}, Options{ScoreThreshold: 50})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	trending := result.Communities[0].Trending
	if len(trending) != 1 || trending[0].ID != "b" {
		t.Errorf("trending = %+v, want only the 100-score post", trending)
	}
}

func TestScanTrendingByComments(t *testing.T) {
	src := &fakeSource{pages: map[string][]domain.Post{
		"SaaS": {
			p("a", 10, 5, "few comments"),
			p("b", 10, 50, "busy thread"),
		},
	}}
	result, err := testEngine(src).Scan(context.Background(), []string{"SaaS"}, Options{ScoreThreshold: 100})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	trending := result.Communities[0].Trending
	if len(trending) != 1 || trending[0].ID != "b" {
		t.Errorf("trending = %+v, want only the busy thread", trending)
	}
}

func TestScanTrendingSortedDescending(t *testing.T) {
	src := &fakeSource{pages: map[string][]domain.Post{
		"SaaS": {
			p("a", 60, 0, "first"),
			p("b", 90, 0, "second"),
			p("c", 60, 0, "third"),
		},
	}}
	result, err := testEngine(src).Scan(context.Background(), []string{"SaaS"}, Options{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	got := make([]string, 0, 3)
	for _, tp := range result.Communities[0].Trending {
		got = append(got, tp.ID)
	}
	// Descending by score; stable for the 60/60 tie.
	want := []string{"b", "a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("trending order = %v, want %v", got, want)
		}
	}
}

func TestScanCategorizesAndAnnotates(t *testing.T) {
	src := &fakeSource{pages: map[string][]domain.Post{
		"SaaS": {
			{ID: "a", Title: "Looking for a tool", Body: "I hate spreadsheets", Community: "SaaS"},
			{ID: "b", Title: "We are hiring a founding engineer", Community: "SaaS"},
			{ID: "c", Title: "nothing interesting", Community: "SaaS"},
		},
	}}
	result, err := testEngine(src).Scan(context.Background(), []string{"SaaS"},
		Options{WithSentiment: true})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	cr := result.Communities[0]
	if cr.PostCount != 3 {
		t.Errorf("post count = %d, want 3", cr.PostCount)
	}
	if len(cr.PainPoints) != 1 || cr.PainPoints[0].ID != "a" {
		t.Fatalf("pain points = %+v", cr.PainPoints)
	}
	if len(cr.Opportunities) != 1 || cr.Opportunities[0].ID != "b" {
		t.Fatalf("opportunities = %+v", cr.Opportunities)
	}
	if s := cr.PainPoints[0].Sentiment; s == nil || s.Label != domain.SentimentNegative {
		t.Errorf("pain sentiment = %+v, want negative", s)
	}
}

func TestScanWithoutSentiment(t *testing.T) {
	src := &fakeSource{pages: map[string][]domain.Post{
		"SaaS": {{ID: "a", Title: "looking for help", Community: "SaaS"}},
	}}
	result, err := testEngine(src).Scan(context.Background(), []string{"SaaS"},
		Options{WithSentiment: false})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if s := result.Communities[0].PainPoints[0].Sentiment; s != nil {
		t.Errorf("sentiment = %+v, want nil when disabled", s)
	}
}

func TestScanFailedCommunityIsSkippedNotFatal(t *testing.T) {
	src := &fakeSource{
		pages: map[string][]domain.Post{
			"good": {p("a", 200, 0, "fine")},
		},
		errs: map[string]error{"bad": errors.New("boom")},
	}
	result, err := testEngine(src).Scan(context.Background(), []string{"bad", "good"}, Options{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(result.Communities) != 2 {
		t.Fatalf("communities = %d, want 2", len(result.Communities))
	}
	if result.Communities[0].Error == "" {
		t.Error("failed community missing error marker")
	}
	if result.Communities[1].Error != "" || result.Communities[1].PostCount != 1 {
		t.Errorf("good community = %+v", result.Communities[1])
	}
	if len(src.calls) != 2 {
		t.Errorf("calls = %v, want both communities attempted", src.calls)
	}
}

func TestScanAggregatesAcrossCommunities(t *testing.T) {
	src := &fakeSource{pages: map[string][]domain.Post{
		"one": {
			{ID: "a", Title: "looking for X", Score: 10, Community: "one"},
		},
		"two": {
			{ID: "b", Title: "looking for Y", Score: 40, Community: "two"},
			{ID: "c", Title: "hiring now", Score: 90, NumComments: 30, Community: "two"},
		},
	}}
	result, err := testEngine(src).Scan(context.Background(), []string{"one", "two"}, Options{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(result.TopPainPoints) != 2 || result.TopPainPoints[0].ID != "b" {
		t.Errorf("top pain points = %+v, want b first by score", result.TopPainPoints)
	}
	if len(result.TopOpportunities) != 1 || result.TopOpportunities[0].ID != "c" {
		t.Errorf("top opportunities = %+v", result.TopOpportunities)
	}
	if len(result.TopTrending) != 1 || result.TopTrending[0].ID != "c" {
		t.Errorf("top trending = %+v", result.TopTrending)
	}
}

func TestScanValidation(t *testing.T) {
	e := testEngine(&fakeSource{})

	if _, err := e.Scan(context.Background(), nil, Options{}); err == nil {
		t.Error("empty communities should fail validation")
	}
	_, err := e.Scan(context.Background(), []string{"SaaS"}, Options{Sort: "weird"})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("unknown sort error = %v, want ValidationError", err)
	}
	if !errors.Is(err, domain.ErrUnknownSort) {
		t.Errorf("unknown sort error = %v, want ErrUnknownSort", err)
	}
}

func TestSearch(t *testing.T) {
	searcher := &fakeSearcher{posts: map[string][]domain.Post{
		"SaaS": {{ID: "a", Title: "I love this", Community: "SaaS"}},
	}}
	e := testEngine(&fakeSource{})

	report, err := e.Search(context.Background(), searcher, []string{"SaaS", "startups"},
		"crm", Options{WithSentiment: true})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if report.Query != "crm" || len(report.Communities) != 2 {
		t.Fatalf("report = %+v", report)
	}
	hits := report.Communities[0].Posts
	if len(hits) != 1 || hits[0].Sentiment == nil || hits[0].Sentiment.Label != domain.SentimentPositive {
		t.Errorf("hits = %+v", hits)
	}
	if len(report.Communities[1].Posts) != 0 {
		t.Errorf("startups hits = %+v, want none", report.Communities[1].Posts)
	}

	if _, err := e.Search(context.Background(), searcher, []string{"SaaS"}, "  ", Options{}); !errors.Is(err, domain.ErrEmptyQuery) {
		t.Errorf("blank query error = %v, want ErrEmptyQuery", err)
	}
}

type fakeSearcher struct {
	posts map[string][]domain.Post
}

func (f *fakeSearcher) Search(_ context.Context, community, _ string, _ int) ([]domain.Post, error) {
	return f.posts[community], nil
}
