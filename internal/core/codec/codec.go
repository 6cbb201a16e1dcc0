// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-02
// Last Modified: 2026-03-04

// Package codec parses and renders the back-reference marker that links a
// migrated GitHub issue to its Google Code origin. The marker embedded on
// creation and the pattern used during reconciliation are derived from the
// same template; if they ever diverge, reconciliation stops recognizing
// issues it previously created.
package codec

import (
	"fmt"
	"regexp"
)

const (
	// FooterPrefix is the literal text introducing a back-reference footer.
	FooterPrefix = "_Original issue: "

	issueTemplate  = "_Original issue: %s_"
	issueURLFormat = "http://code.google.com/p/%s/issues/detail?id=%d"
	urlPattern     = `http://code\.google\.com/p/%s/issues/detail\?id=(\d+)`
)

// Codec extracts and renders Google Code issue references for one project.
type Codec struct {
	project string
	idRe    *regexp.Regexp
}

// New compiles the extraction pattern for the given Google Code project.
func New(project string) *Codec {
	pattern := fmt.Sprintf(issueTemplate, fmt.Sprintf(urlPattern, regexp.QuoteMeta(project)))
	return &Codec{
		project: project,
		idRe:    regexp.MustCompile(pattern),
	}
}

// IssueURL returns the permalink of a Google Code issue.
func (c *Codec) IssueURL(id int) string {
	return fmt.Sprintf(issueURLFormat, c.project, id)
}

// BackReference renders the one-line footer that marks a GitHub issue as
// migrated from the given Google Code issue.
func (c *Codec) BackReference(id int) string {
	return fmt.Sprintf(issueTemplate, c.IssueURL(id))
}

// BackReferenceFor renders the footer for an arbitrary permalink, used when
// the source feed supplies the link itself.
func (c *Codec) BackReferenceFor(link string) string {
	return fmt.Sprintf(issueTemplate, link)
}

// ExtractSourceID searches text for a back-reference footer and returns the
// embedded Google Code issue ID. Casual mentions of numbers or permalinks
// outside the footer template do not match.
func (c *Codec) ExtractSourceID(body string) (int, bool) {
	m := c.idRe.FindStringSubmatch(body)
	if m == nil {
		return 0, false
	}
	var id int
	if _, err := fmt.Sscanf(m[1], "%d", &id); err != nil {
		return 0, false
	}
	return id, true
}

// URLPattern returns the project-bound permalink pattern with the issue ID
// as its only capture group. The backlink rewriter builds its composite
// reference pattern from this so both sides stay in sync.
func (c *Codec) URLPattern() string {
	return fmt.Sprintf(urlPattern, regexp.QuoteMeta(c.project))
}
