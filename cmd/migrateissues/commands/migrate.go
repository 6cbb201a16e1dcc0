// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-06
// Last Modified: 2026-03-08

package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wodow/google-code-issues-migrator/internal/core/backlink"
	"github.com/wodow/google-code-issues-migrator/internal/core/codec"
	"github.com/wodow/google-code-issues-migrator/internal/core/engine"
	"github.com/wodow/google-code-issues-migrator/internal/core/transform"
	"github.com/wodow/google-code-issues-migrator/internal/integrations/github"
	"github.com/wodow/google-code-issues-migrator/internal/integrations/googlecode"
	"github.com/wodow/google-code-issues-migrator/internal/tui"
)

var (
	assignOwner    bool
	baseID         int
	dryRun         bool
	omitPriority   bool
	synchronizeIDs bool
	assignIDs      bool
	tokenFlag      string
	pageSize       int
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate <google-project> <github-username> <github-project>",
	Short: "Transfer all issues from a Google Code project to a GitHub project",
	Long: `Transfers every issue of the Google Code project, oldest first, into
the GitHub repository, then replays comments and open/closed state.
Issues already migrated are detected by their embedded footer and only
topped up with missing comments and state changes.

The GitHub project may be given as 'owner/project' to target an
organization or another user's namespace.

Usage:
  migrateissues migrate myproject mylogin myrepo [-a] [-b N] [-d] [-p] [-s] [-i]`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		runMigrate(args[0], args[1], args[2])
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().BoolVarP(&assignOwner, "assign-owner", "a", false, "Assign owned issues to the authenticated GitHub user")
	migrateCmd.Flags().IntVarP(&baseID, "base-id", "b", 0, "Number of GitHub issues that existed before the migration started")
	migrateCmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Log actions without performing them")
	migrateCmd.Flags().BoolVarP(&omitPriority, "omit-priority", "p", false, "Skip Priority-* labels")
	migrateCmd.Flags().BoolVarP(&synchronizeIDs, "synchronize-ids", "s", false, "Create closed placeholder issues across ID gaps so numbering stays aligned")
	migrateCmd.Flags().BoolVarP(&assignIDs, "assign-ids", "i", false, "Only rewrite issue references in already-migrated issues, no migration")
	migrateCmd.Flags().StringVar(&tokenFlag, "token", "", "GitHub token (or set GITHUB_TOKEN; prompted for if unset)")
	migrateCmd.Flags().IntVar(&pageSize, "page-size", 0, "Override the source fetch page size")
}

func runMigrate(googleProject, githubUser, githubProject string) {
	ctx := context.Background()

	// 1. Authenticate against GitHub and bind the target repository
	client, login, err := authenticate(ctx)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	repo, err := bindRepo(ctx, client, githubUser, githubProject)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// 2. Load config and apply CLI overrides
	cfg := loadConfig()
	if pageSize > 0 {
		cfg.PageSize = pageSize
	}

	// 3. Assemble the pipeline
	cdc := codec.New(googleProject)
	src := googlecode.NewClient().Project(googleProject)

	// 4. Reference-rewrite-only mode
	if assignIDs {
		err := runWithReporter(ctx, "Backlink Rewrite: "+repo.FullName(), func(ctx context.Context, rep engine.Reporter) error {
			return backlink.New(repo, cdc, rep, dryRun).Run(ctx)
		})
		if err != nil {
			fmt.Printf("Error: failed remapping the issue IDs: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// 5. Run the migration
	tr := transform.New(cdc, cfg, baseID, omitPriority)
	opts := engine.Options{
		DryRun:         dryRun,
		AssignOwner:    assignOwner,
		AssigneeLogin:  login,
		SynchronizeIDs: synchronizeIDs,
	}

	title := fmt.Sprintf("Migrating %s to %s", googleProject, repo.FullName())
	err = runWithReporter(ctx, title, func(ctx context.Context, rep engine.Reporter) error {
		return engine.New(src, repo, tr, cdc, cfg, opts, rep).Run(ctx)
	})
	if err != nil {
		fmt.Printf("Error: migration failed: %v\n", err)
		os.Exit(1)
	}
}

// authenticate resolves a GitHub client from the --token flag, the
// GITHUB_TOKEN environment variable, or an interactive prompt, in that
// order. The interactive path retries until credentials pass.
func authenticate(ctx context.Context) (*github.Client, string, error) {
	token := tokenFlag
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return github.InteractiveClient(ctx)
	}

	client := github.NewClient(ctx, token)
	login, err := client.Login(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to authenticate: %w", err)
	}
	return client, login, nil
}

// bindRepo resolves the target repository. A project given as
// "owner/project" is looked up under that owner (user or organization),
// otherwise the repository lives under the given username.
func bindRepo(ctx context.Context, client *github.Client, githubUser, githubProject string) (*github.Repo, error) {
	owner := githubUser
	name := githubProject

	if strings.Contains(githubProject, "/") {
		parts := strings.SplitN(githubProject, "/", 2)
		resolved, err := client.ResolveOwner(ctx, parts[0])
		if err != nil {
			return nil, fmt.Errorf("failed to resolve owner %q: %w", parts[0], err)
		}
		owner = resolved
		name = parts[1]
	}

	return client.Repo(owner, name), nil
}

// runWithReporter runs fn under the appropriate progress reporter: a plain
// text stream in CI or when stdout is not a terminal, the interactive TUI
// otherwise.
func runWithReporter(ctx context.Context, title string, fn func(context.Context, engine.Reporter) error) error {
	isCI := os.Getenv("CI") == "true" || os.Getenv("GITHUB_ACTIONS") == "true"
	if isCI || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fn(ctx, engine.NewStreamReporter(os.Stdout))
	}

	rep := tui.NewChannelReporter()
	p := tea.NewProgram(tui.NewModel(title, rep.Chan()))

	var runErr error
	go func() {
		runErr = fn(ctx, rep)
		rep.Finish(runErr)
	}()

	if _, err := p.Run(); err != nil {
		return err
	}
	return runErr
}
