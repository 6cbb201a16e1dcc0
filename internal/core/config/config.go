// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-02
// Last Modified: 2026-03-05

// Package config handles loading and merging migration configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	// FilteredStatuses lists Google Code status values whose issues are not
	// migrated at all. Case-sensitive.
	FilteredStatuses []string `yaml:"filtered_statuses,omitempty"`

	// StatusLabels maps a Google Code status to the GitHub label appended to
	// every migrated issue. Statuses missing from the table fall back to the
	// lower-cased status string.
	StatusLabels map[string]string `yaml:"status_labels,omitempty"`

	// LabelMapping maps Google Code labels to GitHub label names. Labels
	// missing from the table pass through unchanged.
	LabelMapping map[string]string `yaml:"label_mapping,omitempty"`

	// PageSize is the number of records fetched from Google Code per request.
	PageSize int `yaml:"page_size,omitempty"`

	// SafetyMargin is the minimum number of remaining GitHub API requests
	// required before starting another issue migration.
	SafetyMargin int `yaml:"safety_margin,omitempty"`
}

// Load reads a config file from the given path and expands environment
// variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// Default returns the built-in configuration used when no config file is
// present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// FindConfigPath searches for a config file in standard locations.
func FindConfigPath(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	candidates := []string{
		".migrateissues.yaml",
		".migrateissues.yml",
		".github/migrateissues.yaml",
		".github/migrateissues.yml",
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			abs, _ := filepath.Abs(c)
			return abs
		}
	}

	return ""
}

// IsFiltered reports whether issues with the given status are excluded from
// migration.
func (c *Config) IsFiltered(status string) bool {
	for _, s := range c.FilteredStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// applyDefaults sets default values for unset fields. The default tables
// reproduce the migration behavior most Google Code projects want: dead
// issues are skipped and the stock Type-* labels map onto GitHub's built-in
// ones.
func (c *Config) applyDefaults() {
	if c.FilteredStatuses == nil {
		c.FilteredStatuses = []string{"Invalid", "Duplicate"}
	}
	if c.StatusLabels == nil {
		c.StatusLabels = map[string]string{
			"Invalid":   "invalid",
			"Duplicate": "duplicate",
			"WontFix":   "wontfix",
		}
	}
	if c.LabelMapping == nil {
		c.LabelMapping = map[string]string{
			"Type-Defect":      "bug",
			"Type-Enhancement": "enhancement",
		}
	}
	if c.PageSize == 0 {
		c.PageSize = 500
	}
	if c.SafetyMargin == 0 {
		c.SafetyMargin = 50
	}
}
