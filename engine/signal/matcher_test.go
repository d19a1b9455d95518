package signal

import (
	"reflect"
	"testing"

	"github.com/nikkaroraa/reddit-scout/engine/domain"
	"github.com/nikkaroraa/reddit-scout/engine/lexicon"
)

func testCatalog() lexicon.Catalog {
	return lexicon.Catalog{Categories: map[string][]string{
		"help":    {"looking for", "need help"},
		"pricing": {"too expensive", "overpriced"},
		"hiring":  {"job"},
	}}
}

func post(title, body string) domain.Post {
	return domain.Post{ID: "p1", Title: title, Body: body, Community: "SaaS"}
}

func TestCategorize(t *testing.T) {
	m := NewMatcher(testCatalog())

	t.Run("no phrases means nil", func(t *testing.T) {
		if got := m.Categorize(post("hello world", "nothing to see")); got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})

	t.Run("single category", func(t *testing.T) {
		got := m.Categorize(post("Looking for a CRM", ""))
		if got == nil {
			t.Fatal("expected a match")
		}
		if !reflect.DeepEqual(got.MatchedSignals, []string{"looking for"}) {
			t.Errorf("matched = %v", got.MatchedSignals)
		}
		if _, ok := got.Categories["help"]; !ok {
			t.Errorf("categories = %v, want help key", got.Categories)
		}
	})

	t.Run("multiple categories are non-exclusive", func(t *testing.T) {
		got := m.Categorize(post("Looking for something", "current tool is too expensive"))
		if got == nil {
			t.Fatal("expected a match")
		}
		if _, ok := got.Categories["help"]; !ok {
			t.Errorf("missing help category: %v", got.Categories)
		}
		if _, ok := got.Categories["pricing"]; !ok {
			t.Errorf("missing pricing category: %v", got.Categories)
		}
	})

	t.Run("substring match is deliberate", func(t *testing.T) {
		// "job" inside "jobber" counts; boundary matching would miss
		// multi-word phrases elsewhere in the catalog.
		got := m.Categorize(post("thoughts on jobber?", ""))
		if got == nil {
			t.Fatal("expected a substring match")
		}
		if _, ok := got.Categories["hiring"]; !ok {
			t.Errorf("categories = %v, want hiring", got.Categories)
		}
	})

	t.Run("body alone can match", func(t *testing.T) {
		if got := m.Categorize(post("plain title", "we need help with billing")); got == nil {
			t.Error("expected body text to match")
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		if got := m.Categorize(post("LOOKING FOR ADVICE", "")); got == nil {
			t.Error("expected case-insensitive match")
		}
	})
}

func TestMatchKeywords(t *testing.T) {
	p := post("Looking for a CRM alternative", "tried HubSpot already")

	tests := []struct {
		name     string
		keywords []string
		want     []string
	}{
		{"hit and miss", []string{"looking for", "salesforce"}, []string{"looking for"}},
		{"case insensitive keyword", []string{"HUBSPOT"}, []string{"HUBSPOT"}},
		{"no hits", []string{"pipedrive"}, nil},
		{"blank keywords skipped", []string{"", "  ", "crm"}, []string{"crm"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchKeywords(p, tt.keywords); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MatchKeywords = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContextWindow(t *testing.T) {
	text := "after years on HubSpot we finally decided to migrate away from it"

	got := ContextWindow(text, "hubspot", 10)
	if got == "" {
		t.Fatal("expected a context window")
	}
	if len(got) > len("HubSpot")+20+2 {
		t.Errorf("window too wide: %q", got)
	}

	if got := ContextWindow(text, "missing", 10); got != "" {
		t.Errorf("expected empty window for absent needle, got %q", got)
	}

	// Needle at the very start must not underflow.
	if got := ContextWindow("HubSpot is fine", "hubspot", 30); got == "" {
		t.Error("expected window at string start")
	}
}
