// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-02
// Last Modified: 2026-03-05

package github

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"
	"golang.org/x/term"
)

// NewClient creates a new GitHub client using the provided token.
// If token is empty, it returns an unauthenticated client.
func NewClient(ctx context.Context, token string) *Client {
	var tc *http.Client

	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc = oauth2.NewClient(ctx, ts)
	}

	client := github.NewClient(tc)

	return &Client{
		client: client,
	}
}

// InteractiveClient prompts for a token on the terminal until one passes an
// authentication check, then returns the authenticated client and login.
// Bad credentials are a retry, not an abort.
func InteractiveClient(ctx context.Context) (*Client, string, error) {
	for {
		fmt.Fprint(os.Stderr, "GitHub token: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read token: %w", err)
		}

		token := strings.TrimSpace(string(raw))
		if token == "" {
			fmt.Fprintln(os.Stderr, "Empty token, try again.")
			continue
		}

		client := NewClient(ctx, token)
		login, err := client.Login(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Bad credentials, try again.")
			continue
		}
		return client, login, nil
	}
}
