// Author: Sachindu Nethmin
// GitHub: https://github.com/Sachindu-Nethmin
// Created: 2026-03-03
// Last Modified: 2026-03-07

// Package transform converts Google Code issues and comments into their
// GitHub representation: header/footer annotation, label mapping, and the
// escaping GitHub needs.
package transform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wodow/google-code-issues-migrator/internal/core/codec"
	"github.com/wodow/google-code-issues-migrator/internal/core/config"
	"github.com/wodow/google-code-issues-migrator/internal/integrations/googlecode"
	"github.com/wodow/google-code-issues-migrator/internal/utils/text"
)

// ImportedLabel marks every migrated issue. Reconciliation warns when a
// matched issue is missing it.
const ImportedLabel = "imported"

// mergedNoticeRe matches Google Code's auto-generated merge comment. Those
// carry no information beyond the structured merged-into update, so they are
// dropped as text.
var mergedNoticeRe = regexp.MustCompile(`^Issue (\d+) has been merged into this issue\.`)

// legacyHeaderRe matches the comment-header punctuation emitted by older
// versions of this tool ("_From x on date:_" instead of "_From x on date_").
var legacyHeaderRe = regexp.MustCompile(`^(.+):_\n`)

// IssueSpec is the GitHub-side rendering of a source issue.
type IssueSpec struct {
	Title  string
	Body   string
	Labels []string
}

// Transformer renders source issues and comments for one destination
// repository.
type Transformer struct {
	codec        *codec.Codec
	cfg          *config.Config
	baseID       int
	omitPriority bool
}

// New creates a Transformer. baseID is the number of issues that existed in
// the destination repository before migration; it offsets duplicate
// cross-references. omitPriority drops Priority-* labels.
func New(c *codec.Codec, cfg *config.Config, baseID int, omitPriority bool) *Transformer {
	return &Transformer{
		codec:        c,
		cfg:          cfg,
		baseID:       baseID,
		omitPriority: omitPriority,
	}
}

// TransformIssue renders the GitHub title, body and label set for a source
// issue. The footer it embeds is the durable migrated-from marker, so it
// must stay byte-identical with what reconciliation parses.
func (t *Transformer) TransformIssue(iss googlecode.Issue) IssueSpec {
	title := text.EscapePercent(iss.Title)
	content := text.EscapeHeadings(iss.Content)

	header := fmt.Sprintf("_Original author: %s (%s)_", iss.Author, text.HumanDate(iss.Published))

	footer := t.codec.BackReference(iss.ID)
	if iss.Link != "" {
		footer = t.codec.BackReferenceFor(iss.Link)
	}

	return IssueSpec{
		Title:  title,
		Body:   fmt.Sprintf("%s\n\n%s\n\n\n%s", header, content, footer),
		Labels: t.labels(iss),
	}
}

// PlaceholderIssue renders the synthetic issue used to fill an ID gap left
// by a deleted source issue. It carries the same footer convention so
// reconciliation counts it as migrated.
func (t *Transformer) PlaceholderIssue(id int) IssueSpec {
	body := "_Skipping this issue number to maintain synchronization with Google Code issue IDs._"
	body += "\n\n" + t.codec.BackReference(id)

	return IssueSpec{
		Title:  fmt.Sprintf("Google Code skipped issue %d", id),
		Body:   body,
		Labels: []string{ImportedLabel},
	}
}

// labels builds the GitHub label list: the imported seed, the mapped source
// labels, and a status-derived label.
func (t *Transformer) labels(iss googlecode.Issue) []string {
	labels := []string{ImportedLabel}

	for _, label := range iss.Labels {
		if t.omitPriority && strings.HasPrefix(label, "Priority-") {
			continue
		}
		if mapped, ok := t.cfg.LabelMapping[label]; ok {
			labels = append(labels, mapped)
		} else {
			labels = append(labels, label)
		}
	}

	if mapped, ok := t.cfg.StatusLabels[iss.Status]; ok {
		labels = append(labels, mapped)
	} else if iss.Status != "" {
		labels = append(labels, strings.ToLower(iss.Status))
	}

	return labels
}

// ShouldMigrateComment reports whether a source comment carries anything
// worth replaying: free text other than the auto-generated merge notice, or
// a structured merged-into update.
func ShouldMigrateComment(c googlecode.Comment) bool {
	if c.Content != "" {
		return !mergedNoticeRe.MatchString(c.Content)
	}
	return c.MergedInto != nil
}

// FormatComment renders the GitHub body for a source comment. Merge updates
// become a duplicate note pointing at the migrated parent issue; everything
// else gets an author/date header.
func (t *Transformer) FormatComment(c googlecode.Comment) string {
	if c.MergedInto != nil {
		return fmt.Sprintf("_This issue is a duplicate of #%d_", t.baseID+*c.MergedInto)
	}

	content := text.EscapeHeadings(c.Content)
	return fmt.Sprintf("_From %s on %s_\n%s", c.Author, text.HumanDate(c.Published), content)
}

// NormalizeLegacyComment rewrites the historical header punctuation variant
// so comments created by older tool versions still deduplicate against the
// current format.
func NormalizeLegacyComment(body string) string {
	return legacyHeaderRe.ReplaceAllString(body, "$1_\n")
}
