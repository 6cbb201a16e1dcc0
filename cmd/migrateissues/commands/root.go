// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-06
// Last Modified: 2026-03-08

// Package commands wires the CLI surface of the migrator.
package commands

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/wodow/google-code-issues-migrator/internal/core/config"
)

var (
	cfgFile string
	verbose bool
	runID   string
)

// rootCmd is the base command; all functionality lives in subcommands.
var rootCmd = &cobra.Command{
	Use:   "migrateissues",
	Short: "Migrate all issues from a Google Code project to a GitHub project",
	Long: `migrateissues transfers the full issue history of a Google Code
project into a GitHub repository: issues, comments, labels and
open/closed state. Runs are safely repeatable; issues already carrying
a migration footer on GitHub are recognized and only topped up.

Usage:
  migrateissues migrate [options] <google-project> <github-username> <github-project>
  migrateissues backlinks [options] <google-project> <github-username> <github-project>

Environment variables:
  GITHUB_TOKEN   Token with repo scope. Prompted for interactively if unset.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		runID = uuid.NewString()
		if verbose {
			fmt.Printf("Run ID: %s\n", runID)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default: auto-discover .migrateissues.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	path := config.FindConfigPath(cfgFile)
	if path == "" {
		if verbose {
			fmt.Println("No configuration file found. Using defaults.")
		}
		return config.Default()
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Printf("Warning: Failed to load config: %v. Using defaults.\n", err)
		return config.Default()
	}

	if verbose {
		fmt.Printf("Loaded config from %s\n", path)
	}
	return cfg
}
