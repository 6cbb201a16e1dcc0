package googlecode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// DefaultBaseURL is the Google Code feed host.
const DefaultBaseURL = "http://code.google.com"

// Client fetches paginated issue data from Google Code. It performs no
// writes; the source tracker is read-only.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Google Code feed client.
func NewClient() *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
	}
}

// WithBaseURL points the client at a different feed host. Used by tests and
// by feed mirrors.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = base
	return c
}

// Project binds the client to a single Google Code project.
func (c *Client) Project(name string) *Project {
	return &Project{client: c, name: name}
}

// Project is a per-project view of the feed API.
type Project struct {
	client *Client
	name   string
}

// Name returns the Google Code project name.
func (p *Project) Name() string {
	return p.name
}

// Issues fetches one page of the project issue feed. startIndex is 1-based;
// an empty slice means the feed is exhausted.
func (p *Project) Issues(ctx context.Context, startIndex, maxResults int) ([]Issue, error) {
	path := fmt.Sprintf("/feeds/issues/p/%s/issues/full", url.PathEscape(p.name))
	entries, err := p.client.getFeed(ctx, path, startIndex, maxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issues for %s: %w", p.name, err)
	}

	issues := make([]Issue, 0, len(entries))
	for i := range entries {
		if iss, ok := entries[i].toIssue(); ok {
			issues = append(issues, iss)
		}
	}
	return issues, nil
}

// Comments fetches one page of an issue's comment feed. startIndex is
// 1-based; an empty slice means the feed is exhausted.
func (p *Project) Comments(ctx context.Context, issueID, startIndex, maxResults int) ([]Comment, error) {
	path := fmt.Sprintf("/feeds/issues/p/%s/issues/%d/comments/full", url.PathEscape(p.name), issueID)
	entries, err := p.client.getFeed(ctx, path, startIndex, maxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments for %s#%d: %w", p.name, issueID, err)
	}

	comments := make([]Comment, 0, len(entries))
	for i := range entries {
		if cm, ok := entries[i].toComment(); ok {
			comments = append(comments, cm)
		}
	}
	return comments, nil
}

// getFeed performs one paginated feed request and decodes its entries.
func (c *Client) getFeed(ctx context.Context, path string, startIndex, maxResults int) ([]feedEntry, error) {
	u := fmt.Sprintf("%s%s?alt=json&start-index=%d&max-results=%d",
		c.baseURL, path, startIndex, maxResults)

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("google code feed error: %d - %s", resp.StatusCode, string(body))
	}

	var doc feedDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}

	return doc.Feed.Entries, nil
}
