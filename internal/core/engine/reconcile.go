// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-04
// Last Modified: 2026-03-06

package engine

import (
	"context"
	"fmt"

	"github.com/wodow/google-code-issues-migrator/internal/core/codec"
	"github.com/wodow/google-code-issues-migrator/internal/core/transform"
	"github.com/wodow/google-code-issues-migrator/internal/integrations/github"
)

// IssueLister is the single capability reconciliation needs from the
// destination tracker.
type IssueLister interface {
	ListIssues(ctx context.Context, state string) ([]github.Issue, error)
}

// Index maps Google Code issue IDs to the destination issues previously
// migrated from them.
type Index map[int]*github.Issue

// BuildIndex correlates a full destination scan back to source issue IDs
// via the embedded back-reference. Matched issues missing the imported
// label are flagged but still usable.
func BuildIndex(issues []github.Issue, cdc *codec.Codec, rep Reporter) Index {
	index := make(Index)
	for i := range issues {
		iss := &issues[i]
		gid, ok := cdc.ExtractSourceID(iss.Body)
		if !ok {
			continue
		}
		index[gid] = iss
		if !hasLabel(iss.Labels, transform.ImportedLabel) {
			rep.Warnf("Issue missing imported label %d - %v - %s", gid, iss.Labels, iss.Title)
		}
	}

	rep.Infof("Found %d GitHub issues, %d imported", len(issues), len(index))
	return index
}

// BuildIDMap is the reduced form of BuildIndex used by the backlink pass:
// source issue ID to destination issue number.
func BuildIDMap(issues []github.Issue, cdc *codec.Codec) map[int]int {
	idMap := make(map[int]int)
	for i := range issues {
		if gid, ok := cdc.ExtractSourceID(issues[i].Body); ok {
			idMap[gid] = issues[i].Number
		}
	}
	return idMap
}

// ListAll concatenates the open and closed scans. Two full passes is what
// the destination API offers; "all" is not a supported state filter for
// this capability set.
func ListAll(ctx context.Context, dest IssueLister) ([]github.Issue, error) {
	open, err := dest.ListIssues(ctx, "open")
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate existing issues: %w", err)
	}
	closed, err := dest.ListIssues(ctx, "closed")
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate existing issues: %w", err)
	}
	return append(open, closed...), nil
}

func hasLabel(labels []string, name string) bool {
	for _, l := range labels {
		if l == name {
			return true
		}
	}
	return false
}
