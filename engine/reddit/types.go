// Package reddit is the source client for Reddit's public JSON API. It
// normalizes listings into domain posts and flattens comment trees for the
// thread command.
package reddit

import (
	"encoding/json"
	"time"
)

// Config controls client behavior.
type Config struct {
	// BaseURL overrides the API host, mainly for tests.
	BaseURL string
	// UserAgent identifies this tool to the API.
	UserAgent string
	// Timeout bounds each HTTP request.
	Timeout time.Duration
}

// Comment is one flattened comment with its nesting depth.
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	Score     int       `json:"score"`
	Depth     int       `json:"depth"`
	CreatedAt time.Time `json:"created_at"`
}

// Reddit JSON API response types.

type listingResponse struct {
	Data struct {
		Children []listingChild `json:"children"`
		After    string         `json:"after"`
	} `json:"data"`
}

type listingChild struct {
	Kind string      `json:"kind"`
	Data listingData `json:"data"`
}

type listingData struct {
	ID          string  `json:"id"`
	Subreddit   string  `json:"subreddit"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	SelfText    string  `json:"selftext"`
	Body        string  `json:"body"`
	Permalink   string  `json:"permalink"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	// Replies is "" for leaves or a nested listing for branches.
	Replies json.RawMessage `json:"replies"`
}
