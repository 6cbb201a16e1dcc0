// Author: Sachindu Nethmin
// GitHub: https://github.com/Sachindu-Nethmin
// Created: 2026-03-05
// Last Modified: 2026-03-08

// Package backlink rewrites in-text references to Google Code issue numbers
// inside already-migrated GitHub issues so each reference also carries the
// corresponding GitHub issue number. Reference matching in free text is a
// best-effort heuristic, not a parser.
package backlink

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/wodow/google-code-issues-migrator/internal/core/codec"
	"github.com/wodow/google-code-issues-migrator/internal/core/engine"
	"github.com/wodow/google-code-issues-migrator/internal/integrations/github"
	"github.com/wodow/google-code-issues-migrator/internal/utils/text"
)

// Destination is the capability set the backlink pass needs: the
// reconciliation scan plus body and comment edits.
type Destination interface {
	engine.IssueLister
	ListComments(ctx context.Context, number int) ([]github.Comment, error)
	EditBody(ctx context.Context, number int, body string) error
	EditComment(ctx context.Context, commentID int64, body string) error
}

// Rewriter performs the backlink pass for one project.
type Rewriter struct {
	dest   Destination
	cdc    *codec.Codec
	rep    engine.Reporter
	dryRun bool
	refRe  *regexp.Regexp
}

// New creates a Rewriter. The composite pattern covers the three reference
// shapes: "issue #N" / "issue N", a bare "#N" after a non-newline character
// and a space, and the full permalink. The first alternative consumes a
// whole "(Github: #N)" annotation so the ": #N" inside one can never match
// the bare form on a later run (Go regexps match leftmost-first). Each
// reference alternative also captures a guard group over a trailing
// annotation, consumed in full so no fragment of it stays matchable, and
// the permalink form captures the footer prefix so the durable
// back-reference marker itself is never rewritten.
func New(dest Destination, cdc *codec.Codec, rep engine.Reporter, dryRun bool) *Rewriter {
	const annotation = `\(Github: #\d+\)`
	pattern := fmt.Sprintf(`(?i)%[1]s|issue ?#?(\d+)( %[1]s)?|[^\n] #(\d+)( %[1]s)?|(%[2]s)?%[3]s( %[1]s)?`,
		annotation, regexp.QuoteMeta(codec.FooterPrefix), cdc.URLPattern())

	return &Rewriter{
		dest:   dest,
		cdc:    cdc,
		rep:    rep,
		dryRun: dryRun,
		refRe:  regexp.MustCompile(pattern),
	}
}

// Run rewrites references in every already-migrated destination issue and
// its comments. Issues without a back-reference are reported and skipped.
// Any failure aborts the pass.
func (r *Rewriter) Run(ctx context.Context) error {
	r.rep.Infof("Retrieving existing GitHub issues for ID mapping...")
	issues, err := engine.ListAll(ctx, r.dest)
	if err != nil {
		return err
	}
	idMap := engine.BuildIDMap(issues, r.cdc)
	r.rep.Infof("Found %d GitHub issues, %d imported", len(issues), len(idMap))

	migrated := make(map[int]bool, len(idMap))
	for _, number := range idMap {
		migrated[number] = true
	}

	for i := range issues {
		iss := &issues[i]
		if !migrated[iss.Number] {
			r.rep.Infof("Skipping GitHub issue #%d", iss.Number)
			continue
		}
		r.rep.Infof("Processing GitHub issue #%d", iss.Number)

		if rewritten := r.Rewrite(iss.Body, idMap); rewritten != iss.Body && !r.dryRun {
			if err := r.dest.EditBody(ctx, iss.Number, rewritten); err != nil {
				return fmt.Errorf("failed remapping issue #%d: %w", iss.Number, err)
			}
		}

		comments, err := r.dest.ListComments(ctx, iss.Number)
		if err != nil {
			return fmt.Errorf("failed remapping issue #%d: %w", iss.Number, err)
		}
		for _, c := range comments {
			if rewritten := r.Rewrite(c.Body, idMap); rewritten != c.Body && !r.dryRun {
				if err := r.dest.EditComment(ctx, c.ID, rewritten); err != nil {
					return fmt.Errorf("failed remapping issue #%d: %w", iss.Number, err)
				}
			}
		}
	}
	return nil
}

// Rewrite annotates every recognized reference to a known source issue ID.
// Short textual forms get the ID re-rendered with a zero-width space (so
// the destination does not auto-link the raw number) followed by the GitHub
// number; permalinks get the GitHub number appended. Unknown IDs and
// already-annotated references pass through untouched.
func (r *Rewriter) Rewrite(body string, idMap map[int]int) string {
	return r.refRe.ReplaceAllStringFunc(body, func(match string) string {
		sub := r.refRe.FindStringSubmatch(match)
		if sub == nil {
			return match
		}

		const (
			issueFormID   = 1
			issueFormDone = 2
			hashFormID    = 3
			hashFormDone  = 4
			footerPrefix  = 5
			linkFormID    = 6
			linkFormDone  = 7
		)

		if sub[issueFormDone] != "" || sub[hashFormDone] != "" || sub[linkFormDone] != "" || sub[footerPrefix] != "" {
			return match
		}

		switch {
		case sub[issueFormID] != "":
			return r.annotateShortForm(match, sub[issueFormID], idMap)
		case sub[hashFormID] != "":
			return r.annotateShortForm(match, sub[hashFormID], idMap)
		case sub[linkFormID] != "":
			gid, _ := strconv.Atoi(sub[linkFormID])
			ghID, ok := idMap[gid]
			if !ok {
				return match
			}
			return fmt.Sprintf("%s (Github: #%d)", match, ghID)
		}
		return match
	})
}

// annotateShortForm swaps the trailing ID digits for the annotated form.
// With no guard matched the short-form match always ends in the ID, so a
// suffix replacement cannot touch any other digits in the match.
func (r *Rewriter) annotateShortForm(match, digits string, idMap map[int]int) string {
	gid, _ := strconv.Atoi(digits)
	ghID, ok := idMap[gid]
	if !ok {
		return match
	}
	note := fmt.Sprintf("%s%d (Github: #%d)", text.ZeroWidthSpace, gid, ghID)
	return strings.TrimSuffix(match, digits) + note
}
