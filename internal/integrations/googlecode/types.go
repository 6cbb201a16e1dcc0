// Package googlecode reads the issue and comment feeds of a Google Code
// project. The feeds are paginated, read-only, and served as GData-style
// JSON ("alt=json"), so field names carry the "$t" text-value convention.
package googlecode

import (
	"regexp"
	"strconv"
)

// Issue is one entry from the project issue feed. Feed entries are never
// mutated; the migrator only reads them.
type Issue struct {
	ID        int
	Title     string
	Author    string
	Content   string
	Published string
	Status    string
	State     string // "open" or "closed"
	Labels    []string
	Owner     string
	Link      string // HTML permalink
}

// Comment is one entry from an issue comment feed. MergedInto is set when
// the comment records a duplicate-merge update; such comments may have an
// empty body.
type Comment struct {
	ID         int
	Author     string
	Content    string
	Published  string
	MergedInto *int
}

// --- GData JSON wire format ---

type tValue struct {
	Value string `json:"$t"`
}

type feedAuthor struct {
	Name tValue `json:"name"`
}

type feedLink struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type feedUpdates struct {
	MergedIntoUpdate *tValue `json:"issues$mergedIntoUpdate"`
}

type feedOwner struct {
	Username tValue `json:"issues$username"`
}

type feedEntry struct {
	ID        tValue       `json:"id"`
	Title     tValue       `json:"title"`
	Content   tValue       `json:"content"`
	Published tValue       `json:"published"`
	Authors   []feedAuthor `json:"author"`
	Status    *tValue      `json:"issues$status"`
	State     *tValue      `json:"issues$state"`
	Labels    []tValue     `json:"issues$label"`
	Owner     *feedOwner   `json:"issues$owner"`
	Links     []feedLink   `json:"link"`
	Updates   *feedUpdates `json:"issues$updates"`
}

type feedDocument struct {
	Feed struct {
		Entries []feedEntry `json:"entry"`
	} `json:"feed"`
}

var numericTail = regexp.MustCompile(`\d+$`)

// parseEntryID extracts the numeric part of a GData entry ID, which is a
// URL ending in the issue or comment number.
func parseEntryID(id string) (int, bool) {
	m := numericTail.FindString(id)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (e *feedEntry) author() string {
	if len(e.Authors) == 0 {
		return ""
	}
	return e.Authors[0].Name.Value
}

func (e *feedEntry) htmlLink() string {
	for _, l := range e.Links {
		if l.Rel == "alternate" {
			return l.Href
		}
	}
	if len(e.Links) > 0 {
		return e.Links[len(e.Links)-1].Href
	}
	return ""
}

func (e *feedEntry) toIssue() (Issue, bool) {
	id, ok := parseEntryID(e.ID.Value)
	if !ok {
		return Issue{}, false
	}

	iss := Issue{
		ID:        id,
		Title:     e.Title.Value,
		Author:    e.author(),
		Content:   e.Content.Value,
		Published: e.Published.Value,
		Link:      e.htmlLink(),
	}
	if e.Status != nil {
		iss.Status = e.Status.Value
	}
	if e.State != nil {
		iss.State = e.State.Value
	}
	if e.Owner != nil {
		iss.Owner = e.Owner.Username.Value
	}
	for _, l := range e.Labels {
		iss.Labels = append(iss.Labels, l.Value)
	}
	return iss, true
}

func (e *feedEntry) toComment() (Comment, bool) {
	id, ok := parseEntryID(e.ID.Value)
	if !ok {
		return Comment{}, false
	}

	c := Comment{
		ID:        id,
		Author:    e.author(),
		Content:   e.Content.Value,
		Published: e.Published.Value,
	}
	if e.Updates != nil && e.Updates.MergedIntoUpdate != nil {
		if target, err := strconv.Atoi(e.Updates.MergedIntoUpdate.Value); err == nil {
			c.MergedInto = &target
		}
	}
	return c, true
}
