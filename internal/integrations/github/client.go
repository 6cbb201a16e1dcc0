// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-02
// Last Modified: 2026-03-07

package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v60/github"
)

// defaultLabelColor is applied to labels created during migration.
const defaultLabelColor = "FFFFFF"

// Issue is the slim view of a GitHub issue the migrator works with.
type Issue struct {
	Number int
	Title  string
	Body   string
	State  string // "open" or "closed"
	Labels []string
}

// Comment is the slim view of a GitHub issue comment.
type Comment struct {
	ID   int64
	Body string
}

// Client wraps the GitHub API client.
type Client struct {
	client *github.Client
}

// Login returns the login of the authenticated user.
func (c *Client) Login(ctx context.Context) (string, error) {
	user, _, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to fetch authenticated user: %w", err)
	}
	return user.GetLogin(), nil
}

// ResolveOwner resolves a repository owner by name, accepting either a user
// or an organization. Unknown names fall back to the authenticated user so
// that "owner/project" targets degrade the same way plain project names do.
func (c *Client) ResolveOwner(ctx context.Context, name string) (string, error) {
	if user, _, err := c.client.Users.Get(ctx, name); err == nil {
		return user.GetLogin(), nil
	}
	if org, _, err := c.client.Organizations.Get(ctx, name); err == nil {
		return org.GetLogin(), nil
	}
	return c.Login(ctx)
}

// RemainingRequests reports the remaining core API request quota.
func (c *Client) RemainingRequests(ctx context.Context) (int, error) {
	limits, _, err := c.client.RateLimits(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch rate limits: %w", err)
	}
	return limits.GetCore().Remaining, nil
}

// Repo binds the client to a single repository.
func (c *Client) Repo(owner, name string) *Repo {
	return &Repo{client: c, owner: owner, name: name}
}

// Repo is a per-repository view of the issue API.
type Repo struct {
	client *Client
	owner  string
	name   string
}

// FullName returns the repository in "owner/name" form.
func (r *Repo) FullName() string {
	return r.owner + "/" + r.name
}

// ListIssues fetches all issues with the given state ("open" or "closed"),
// following pagination to the end. Pull requests are excluded.
func (r *Repo) ListIssues(ctx context.Context, state string) ([]Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:       state,
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var issues []Issue
	for {
		page, resp, err := r.client.client.Issues.ListByRepo(ctx, r.owner, r.name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s issues: %w", state, err)
		}
		for _, iss := range page {
			if iss.IsPullRequest() {
				continue
			}
			issues = append(issues, convertIssue(iss))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return issues, nil
}

// CreateIssue opens a new issue with the given labels.
func (r *Repo) CreateIssue(ctx context.Context, title, body string, labels []string) (*Issue, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("issue title cannot be empty")
	}

	req := &github.IssueRequest{
		Title: github.String(title),
		Body:  github.String(body),
	}
	if len(labels) > 0 {
		req.Labels = &labels
	}

	created, _, err := r.client.client.Issues.Create(ctx, r.owner, r.name, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}
	iss := convertIssue(created)
	return &iss, nil
}

// EditState sets an issue's open/closed state.
func (r *Repo) EditState(ctx context.Context, number int, state string) error {
	if state != "open" && state != "closed" {
		return fmt.Errorf("invalid issue state %q", state)
	}

	_, _, err := r.client.client.Issues.Edit(ctx, r.owner, r.name, number, &github.IssueRequest{
		State: github.String(state),
	})
	if err != nil {
		return fmt.Errorf("failed to edit issue #%d state: %w", number, err)
	}
	return nil
}

// EditBody replaces an issue's body text.
func (r *Repo) EditBody(ctx context.Context, number int, body string) error {
	_, _, err := r.client.client.Issues.Edit(ctx, r.owner, r.name, number, &github.IssueRequest{
		Body: github.String(body),
	})
	if err != nil {
		return fmt.Errorf("failed to edit issue #%d body: %w", number, err)
	}
	return nil
}

// Assign sets an issue's assignee.
func (r *Repo) Assign(ctx context.Context, number int, assignee string) error {
	if assignee == "" {
		return fmt.Errorf("assignee cannot be empty")
	}

	_, _, err := r.client.client.Issues.Edit(ctx, r.owner, r.name, number, &github.IssueRequest{
		Assignee: github.String(assignee),
	})
	if err != nil {
		return fmt.Errorf("failed to assign issue #%d: %w", number, err)
	}
	return nil
}

// ListComments fetches all comments of an issue in creation order.
func (r *Repo) ListComments(ctx context.Context, number int) ([]Comment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var comments []Comment
	for {
		page, resp, err := r.client.client.Issues.ListComments(ctx, r.owner, r.name, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments for issue #%d: %w", number, err)
		}
		for _, cm := range page {
			comments = append(comments, Comment{ID: cm.GetID(), Body: cm.GetBody()})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return comments, nil
}

// CreateComment posts a comment on an issue.
func (r *Repo) CreateComment(ctx context.Context, number int, body string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("comment body cannot be empty")
	}

	comment := &github.IssueComment{
		Body: github.String(body),
	}
	_, _, err := r.client.client.Issues.CreateComment(ctx, r.owner, r.name, number, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// EditComment replaces a comment's body text.
func (r *Repo) EditComment(ctx context.Context, commentID int64, body string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("comment body cannot be empty")
	}

	comment := &github.IssueComment{
		Body: github.String(body),
	}
	_, _, err := r.client.client.Issues.EditComment(ctx, r.owner, r.name, commentID, comment)
	if err != nil {
		return fmt.Errorf("failed to edit comment %d: %w", commentID, err)
	}
	return nil
}

// EnsureLabel returns the named label, creating it on first use. Creation is
// idempotent from the caller's point of view.
func (r *Repo) EnsureLabel(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("label name cannot be empty")
	}

	label, resp, err := r.client.client.Issues.GetLabel(ctx, r.owner, r.name, name)
	if err == nil {
		return label.GetName(), nil
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		return "", fmt.Errorf("failed to look up label %q: %w", name, err)
	}

	created, _, err := r.client.client.Issues.CreateLabel(ctx, r.owner, r.name, &github.Label{
		Name:  github.String(name),
		Color: github.String(defaultLabelColor),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create label %q: %w", name, err)
	}
	return created.GetName(), nil
}

// RemainingRequests reports the remaining core API request quota.
func (r *Repo) RemainingRequests(ctx context.Context) (int, error) {
	return r.client.RemainingRequests(ctx)
}

func convertIssue(iss *github.Issue) Issue {
	out := Issue{
		Number: iss.GetNumber(),
		Title:  iss.GetTitle(),
		Body:   iss.GetBody(),
		State:  iss.GetState(),
	}
	for _, l := range iss.Labels {
		out.Labels = append(out.Labels, l.GetName())
	}
	return out
}
