// Author: Sachindu Nethmin
// GitHub: https://github.com/Sachindu-Nethmin
// Created: 2026-03-05
// Last Modified: 2026-03-08

package backlink

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/wodow/google-code-issues-migrator/internal/core/codec"
	"github.com/wodow/google-code-issues-migrator/internal/integrations/github"
)

type fakeDest struct {
	issues         []github.Issue
	comments       map[int][]github.Comment
	editedBodies   map[int]string
	editedComments map[int64]string
}

func newFakeDest() *fakeDest {
	return &fakeDest{
		comments:       make(map[int][]github.Comment),
		editedBodies:   make(map[int]string),
		editedComments: make(map[int64]string),
	}
}

func (d *fakeDest) seed(number int, gid int, cdc *codec.Codec, body string) {
	full := fmt.Sprintf("_Original author: someone_\n\n%s\n\n\n%s", body, cdc.BackReference(gid))
	d.issues = append(d.issues, github.Issue{Number: number, Body: full, State: "open", Labels: []string{"imported"}})
}

func (d *fakeDest) ListIssues(ctx context.Context, state string) ([]github.Issue, error) {
	var out []github.Issue
	for _, iss := range d.issues {
		if iss.State == state {
			out = append(out, iss)
		}
	}
	return out, nil
}

func (d *fakeDest) ListComments(ctx context.Context, number int) ([]github.Comment, error) {
	return d.comments[number], nil
}

func (d *fakeDest) EditBody(ctx context.Context, number int, body string) error {
	d.editedBodies[number] = body
	return nil
}

func (d *fakeDest) EditComment(ctx context.Context, commentID int64, body string) error {
	d.editedComments[commentID] = body
	return nil
}

type recordReporter struct {
	infos []string
	warns []string
}

func (r *recordReporter) Printf(format string, args ...any) {}
func (r *recordReporter) End()                              {}

func (r *recordReporter) Infof(format string, args ...any) {
	r.infos = append(r.infos, fmt.Sprintf(format, args...))
}

func (r *recordReporter) Warnf(format string, args ...any) {
	r.warns = append(r.warns, fmt.Sprintf(format, args...))
}

func newRewriter(t *testing.T, dest Destination, dryRun bool) (*Rewriter, *codec.Codec, *recordReporter) {
	t.Helper()
	cdc := codec.New("myproject")
	rep := &recordReporter{}
	return New(dest, cdc, rep, dryRun), cdc, rep
}

func TestRewriteShortForms(t *testing.T) {
	r, _, _ := newRewriter(t, newFakeDest(), false)
	idMap := map[int]int{5: 42, 9: 77}

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"issue hash form", "see issue #5 for details", "see issue #&#8203;5 (Github: #42) for details"},
		{"issue word form", "see issue 5 for details", "see issue &#8203;5 (Github: #42) for details"},
		{"bare hash form", "fixed by: #9 earlier", "fixed by: #&#8203;9 (Github: #77) earlier"},
		{"unknown id untouched", "see issue #6", "see issue #6"},
		{"hash at line start untouched", "#5 heading-like", "#5 heading-like"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Rewrite(tc.in, idMap); got != tc.want {
				t.Errorf("Rewrite(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestRewritePermalinkAppendsReference(t *testing.T) {
	r, cdc, _ := newRewriter(t, newFakeDest(), false)
	idMap := map[int]int{5: 42}

	in := "related: " + cdc.IssueURL(5)
	want := "related: " + cdc.IssueURL(5) + " (Github: #42)"
	if got := r.Rewrite(in, idMap); got != want {
		t.Errorf("Rewrite(%q) = %q, want %q", in, got, want)
	}
}

func TestRewriteLeavesBackReferenceFooter(t *testing.T) {
	r, cdc, _ := newRewriter(t, newFakeDest(), false)
	idMap := map[int]int{5: 42}

	footer := cdc.BackReference(5)
	if got := r.Rewrite(footer, idMap); got != footer {
		t.Errorf("Rewrite(%q) = %q, want unchanged", footer, got)
	}
}

func TestRewriteSecondRunIsStable(t *testing.T) {
	r, cdc, _ := newRewriter(t, newFakeDest(), false)
	idMap := map[int]int{5: 42, 42: 9}

	inputs := []string{
		"see issue #5 for details",
		"fixed by: #5 earlier",
		"related: " + cdc.IssueURL(5),
	}
	for _, in := range inputs {
		once := r.Rewrite(in, idMap)
		if twice := r.Rewrite(once, idMap); twice != once {
			t.Errorf("second pass over %q changed %q to %q", in, once, twice)
		}
	}
}

func TestRunRewritesBodiesAndComments(t *testing.T) {
	dest := newFakeDest()
	cdc := codec.New("myproject")
	dest.seed(42, 5, cdc, "duplicate of issue #7")
	dest.seed(44, 7, cdc, "original report")
	dest.comments[44] = []github.Comment{
		{ID: 900, Body: "split out from issue #5"},
		{ID: 901, Body: "no references here"},
	}

	rep := &recordReporter{}
	r := New(dest, cdc, rep, false)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	body, ok := dest.editedBodies[42]
	if !ok {
		t.Fatal("issue 42 body was not edited")
	}
	if !strings.Contains(body, "issue #&#8203;7 (Github: #44)") {
		t.Errorf("issue 42 body missing annotation: %q", body)
	}

	edited, ok := dest.editedComments[900]
	if !ok {
		t.Fatal("comment 900 was not edited")
	}
	if !strings.Contains(edited, "issue #&#8203;5 (Github: #42)") {
		t.Errorf("comment 900 missing annotation: %q", edited)
	}
	if _, ok := dest.editedComments[901]; ok {
		t.Error("comment 901 has no references and should not be edited")
	}
}

func TestRunSkipsIssuesWithoutBackReference(t *testing.T) {
	dest := newFakeDest()
	cdc := codec.New("myproject")
	dest.seed(42, 5, cdc, "migrated issue")
	dest.issues = append(dest.issues, github.Issue{Number: 50, Body: "hand-written, mentions issue #5", State: "open"})

	rep := &recordReporter{}
	r := New(dest, cdc, rep, false)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if _, ok := dest.editedBodies[50]; ok {
		t.Error("issue 50 is not migrated and should not be edited")
	}
	var skipped bool
	for _, msg := range rep.infos {
		if strings.Contains(msg, "Skipping GitHub issue #50") {
			skipped = true
		}
	}
	if !skipped {
		t.Errorf("expected a skip report for issue 50, got %v", rep.infos)
	}
}

func TestRunDryRunEditsNothing(t *testing.T) {
	dest := newFakeDest()
	cdc := codec.New("myproject")
	dest.seed(42, 5, cdc, "duplicate of issue #7")
	dest.seed(44, 7, cdc, "original report")
	dest.comments[42] = []github.Comment{{ID: 900, Body: "see issue #7"}}

	rep := &recordReporter{}
	r := New(dest, cdc, rep, true)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(dest.editedBodies) != 0 || len(dest.editedComments) != 0 {
		t.Errorf("dry run performed edits: bodies=%v comments=%v", dest.editedBodies, dest.editedComments)
	}
}
