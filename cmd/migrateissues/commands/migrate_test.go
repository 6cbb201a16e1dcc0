// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-07
// Last Modified: 2026-03-08

package commands

import (
	"context"
	"testing"

	"github.com/wodow/google-code-issues-migrator/internal/integrations/github"
)

func TestBindRepoPlainProject(t *testing.T) {
	ctx := context.Background()
	client := github.NewClient(ctx, "")

	repo, err := bindRepo(ctx, client, "alice", "myrepo")
	if err != nil {
		t.Fatalf("bindRepo() error: %v", err)
	}
	if got := repo.FullName(); got != "alice/myrepo" {
		t.Fatalf("expected alice/myrepo, got %q", got)
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{"migrate": false, "backlinks": false}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
