package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/nikkaroraa/reddit-scout/engine/domain"
)

const (
	defaultBaseURL   = "https://www.reddit.com"
	defaultUserAgent = "reddit-scout/1.0 (community pain-point monitoring)"
	defaultTimeout   = 30 * time.Second
)

// Client fetches pages of posts from Reddit's public JSON API.
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient creates a Client with the given config. Zero-value fields take
// defaults; the HTTP transport is OTel-instrumented.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// FetchPage returns one page of posts for a community. A non-200 response is
// tolerated as an empty page; only transport-level failures surface as
// errors, which the scan loop catches per community.
func (c *Client) FetchPage(ctx context.Context, community string, sort domain.Sort, window string, limit int) ([]domain.Post, error) {
	u := fmt.Sprintf("%s/r/%s/%s.json?limit=%d&raw_json=1", c.cfg.BaseURL, community, sort, limit)
	if sort == domain.SortTop && window != "" {
		u += "&t=" + url.QueryEscape(window)
	}
	return c.fetchListing(ctx, u, community)
}

// Search returns posts matching query within a community, newest first.
func (c *Client) Search(ctx context.Context, community, query string, limit int) ([]domain.Post, error) {
	u := fmt.Sprintf("%s/r/%s/search.json?q=%s&restrict_sr=1&sort=new&limit=%d&raw_json=1",
		c.cfg.BaseURL, community, url.QueryEscape(query), limit)
	return c.fetchListing(ctx, u, community)
}

func (c *Client) fetchListing(ctx context.Context, u, community string) ([]domain.Post, error) {
	body, status, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	if status != http.StatusOK {
		log.Printf("warning: r/%s returned http %d, treating as empty page", community, status)
		io.Copy(io.Discard, body)
		return nil, nil
	}

	var resp listingResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("r/%s: decode listing: %w", community, err)
	}

	posts := make([]domain.Post, 0, len(resp.Data.Children))
	for _, child := range resp.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		posts = append(posts, normalizePost(child.Data))
	}
	return posts, nil
}

// Thread fetches one post with its comment tree flattened depth-first. The
// traversal is iterative with an explicit depth counter, so deeply nested
// threads cannot exhaust the stack.
func (c *Client) Thread(ctx context.Context, community, postID string, limit int) (domain.Post, []Comment, error) {
	u := fmt.Sprintf("%s/r/%s/comments/%s.json?limit=%d&raw_json=1", c.cfg.BaseURL, community, postID, limit)
	body, status, err := c.get(ctx, u)
	if err != nil {
		return domain.Post{}, nil, err
	}
	defer body.Close()

	if status != http.StatusOK {
		return domain.Post{}, nil, fmt.Errorf("thread %s: http %d", postID, status)
	}

	// Reddit returns [postListing, commentListing].
	var listings []listingResponse
	if err := json.NewDecoder(body).Decode(&listings); err != nil {
		return domain.Post{}, nil, fmt.Errorf("thread %s: decode: %w", postID, err)
	}
	if len(listings) < 1 || len(listings[0].Data.Children) == 0 {
		return domain.Post{}, nil, fmt.Errorf("thread %s: empty response", postID)
	}

	post := normalizePost(listings[0].Data.Children[0].Data)
	var comments []Comment
	if len(listings) > 1 {
		comments = flattenComments(listings[1].Data.Children)
	}
	return post, comments, nil
}

// flattenComments walks the comment forest depth-first using an explicit
// stack, annotating each comment with its depth.
func flattenComments(roots []listingChild) []Comment {
	type frame struct {
		child listingChild
		depth int
	}

	var stack []frame
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{roots[i], 0})
	}

	var out []Comment
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.child.Kind != "t1" {
			continue
		}
		d := f.child.Data
		out = append(out, Comment{
			ID:        d.ID,
			Author:    d.Author,
			Body:      d.Body,
			Score:     d.Score,
			Depth:     f.depth,
			CreatedAt: time.Unix(int64(d.CreatedUTC), 0).UTC(),
		})

		// Replies is "" when there are none.
		if len(d.Replies) == 0 || string(d.Replies) == `""` {
			continue
		}
		var nested listingResponse
		if err := json.Unmarshal(d.Replies, &nested); err != nil {
			continue
		}
		for i := len(nested.Data.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{nested.Data.Children[i], f.depth + 1})
		}
	}
	return out
}

func normalizePost(d listingData) domain.Post {
	return domain.Post{
		ID:          d.ID,
		Title:       d.Title,
		Body:        domain.TruncateBody(d.SelfText),
		Score:       d.Score,
		NumComments: d.NumComments,
		Author:      d.Author,
		CreatedAt:   time.Unix(int64(d.CreatedUTC), 0).UTC(),
		Permalink:   "https://www.reddit.com" + d.Permalink,
		Community:   d.Subreddit,
	}
}

func (c *Client) get(ctx context.Context, u string) (io.ReadCloser, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	return resp.Body, resp.StatusCode, nil
}
