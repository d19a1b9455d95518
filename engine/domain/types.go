// Package domain defines core domain types, constants, and validation for the
// reddit-scout engine. It acts as the validation gate at command entry points.
package domain

import "time"

// MaxBodyLength bounds how much of a post body is kept after normalization.
const MaxBodyLength = 2000

// Sort is a Reddit listing sort order.
type Sort string

const (
	SortNew Sort = "new"
	SortHot Sort = "hot"
	SortTop Sort = "top"
)

// ValidSorts is the set of recognised listing sorts.
var ValidSorts = map[Sort]bool{
	SortNew: true, SortHot: true, SortTop: true,
}

// ValidWindows is the set of recognised `t=` time windows for top listings.
var ValidWindows = map[string]bool{
	"hour": true, "day": true, "week": true,
	"month": true, "year": true, "all": true,
}

// Post is a normalized unit of content fetched from one community.
// Immutable once fetched within a run; never persisted directly.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Score       int       `json:"score"`
	NumComments int       `json:"num_comments"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"created_at"`
	Permalink   string    `json:"permalink"`
	Community   string    `json:"community"`
}

// SentimentLabel is the three-way sentiment classification.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// Sentiment holds lexicon hit counts and the derived compound score.
// Label is positive iff Compound >= 0.2, negative iff Compound <= -0.2,
// neutral otherwise.
type Sentiment struct {
	Label        SentimentLabel `json:"label"`
	Compound     float64        `json:"compound"`
	PositiveHits int            `json:"positive_hits"`
	NegativeHits int            `json:"negative_hits"`
}

// SignalMatch is a Post annotated with the catalog phrases it matched.
// MatchedSignals is non-empty for every SignalMatch; Categories maps category
// name to the phrases matched for that category, absent categories omitted.
type SignalMatch struct {
	Post
	MatchedSignals []string            `json:"matched_signals"`
	Categories     map[string][]string `json:"categories"`
	Sentiment      *Sentiment          `json:"sentiment,omitempty"`
}

// KeywordAlert is a durable keyword-alert definition. MatchCount accumulates
// monotonically across check cycles.
type KeywordAlert struct {
	ID            string     `json:"id"`
	Keywords      []string   `json:"keywords"`
	Communities   []string   `json:"communities"`
	Enabled       bool       `json:"enabled"`
	CreatedAt     time.Time  `json:"created_at"`
	LastCheckedAt *time.Time `json:"last_checked_at,omitempty"`
	MatchCount    int        `json:"match_count"`
}

// CompetitorConfig is the read-only competitor tracking configuration.
type CompetitorConfig struct {
	Competitors []string `json:"competitors"`
	Communities []string `json:"communities"`
}

// ScheduleStatus is the state of a ScheduledPost.
type ScheduleStatus string

const (
	SchedulePending   ScheduleStatus = "pending"
	SchedulePosted    ScheduleStatus = "posted"
	ScheduleFailed    ScheduleStatus = "failed"
	ScheduleCancelled ScheduleStatus = "cancelled"
)

// ScheduledPost is a reminder record for a post the operator intends to
// publish manually. Transitions: pending -> posted | pending -> cancelled;
// posted and cancelled are terminal.
type ScheduledPost struct {
	ID          string         `json:"id"`
	Community   string         `json:"community"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	ScheduledAt time.Time      `json:"scheduled_at"`
	CreatedAt   time.Time      `json:"created_at"`
	Status      ScheduleStatus `json:"status"`
	CancelledAt *time.Time     `json:"cancelled_at,omitempty"`
	PostedAt    *time.Time     `json:"posted_at,omitempty"`
	ExternalURL string         `json:"external_url,omitempty"`
}

// TruncateBody clips s to MaxBodyLength runes.
func TruncateBody(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxBodyLength {
		return s
	}
	return string(runes[:MaxBodyLength])
}
