// Author: Sachindu Nethmin
// GitHub: https://github.com/Sachindu-Nethmin
// Created: 2026-03-07
// Last Modified: 2026-03-08

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wodow/google-code-issues-migrator/internal/core/backlink"
	"github.com/wodow/google-code-issues-migrator/internal/core/codec"
	"github.com/wodow/google-code-issues-migrator/internal/core/engine"
)

var (
	backlinksDry   bool
	backlinksToken string
)

// backlinksCmd represents the backlinks command
var backlinksCmd = &cobra.Command{
	Use:   "backlinks <google-project> <github-username> <github-project>",
	Short: "Rewrite issue references in already-migrated GitHub issues",
	Long: `Scans every migrated issue on GitHub and annotates textual references
to Google Code issue numbers ("issue #12", "#12", or the full permalink)
with the corresponding GitHub issue number. Running it again is a no-op
for references already annotated.

Usage:
  migrateissues backlinks myproject mylogin myrepo [--dry-run]`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		runBacklinks(args[0], args[1], args[2])
	},
}

func init() {
	rootCmd.AddCommand(backlinksCmd)

	backlinksCmd.Flags().BoolVar(&backlinksDry, "dry-run", false, "Log rewrites without performing them")
	backlinksCmd.Flags().StringVar(&backlinksToken, "token", "", "GitHub token (or set GITHUB_TOKEN; prompted for if unset)")
}

func runBacklinks(googleProject, githubUser, githubProject string) {
	ctx := context.Background()

	tokenFlag = backlinksToken
	client, _, err := authenticate(ctx)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	repo, err := bindRepo(ctx, client, githubUser, githubProject)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	cdc := codec.New(googleProject)
	err = runWithReporter(ctx, "Backlink Rewrite: "+repo.FullName(), func(ctx context.Context, rep engine.Reporter) error {
		return backlink.New(repo, cdc, rep, backlinksDry).Run(ctx)
	})
	if err != nil {
		fmt.Printf("Error: failed remapping the issue IDs: %v\n", err)
		os.Exit(1)
	}
}
