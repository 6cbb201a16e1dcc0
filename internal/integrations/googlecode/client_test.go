package googlecode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const issueFeedPage = `{
  "feed": {
    "entry": [
      {
        "id": {"$t": "http://code.google.com/feeds/issues/p/myproject/issues/full/3"},
        "title": {"$t": "Crash on startup"},
        "content": {"$t": "It crashes.\n# not a heading"},
        "published": {"$t": "2009-06-18T14:35:02.000Z"},
        "author": [{"name": {"$t": "alice"}}],
        "issues$status": {"$t": "Accepted"},
        "issues$state": {"$t": "open"},
        "issues$label": [{"$t": "Type-Defect"}, {"$t": "Priority-High"}],
        "issues$owner": {"issues$username": {"$t": "alice"}},
        "link": [
          {"rel": "self", "href": "http://code.google.com/feeds/issues/p/myproject/issues/full/3"},
          {"rel": "alternate", "href": "http://code.google.com/p/myproject/issues/detail?id=3"}
        ]
      }
    ]
  }
}`

const commentFeedPage = `{
  "feed": {
    "entry": [
      {
        "id": {"$t": "http://code.google.com/feeds/issues/p/myproject/issues/3/comments/full/1"},
        "content": {"$t": ""},
        "published": {"$t": "2009-07-01T09:00:00.000Z"},
        "author": [{"name": {"$t": "bob"}}],
        "issues$updates": {"issues$mergedIntoUpdate": {"$t": "7"}}
      },
      {
        "id": {"$t": "http://code.google.com/feeds/issues/p/myproject/issues/3/comments/full/2"},
        "content": {"$t": "me too"},
        "published": {"$t": "2009-07-02T09:00:00.000Z"},
        "author": [{"name": {"$t": "carol"}}]
      }
    ]
  }
}`

func TestIssuesDecodesFeedEntry(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, issueFeedPage)
	}))
	defer srv.Close()

	p := NewClient().WithBaseURL(srv.URL).Project("myproject")
	issues, err := p.Issues(context.Background(), 1, 500)
	if err != nil {
		t.Fatalf("Issues failed: %v", err)
	}
	if gotQuery != "alt=json&start-index=1&max-results=500" {
		t.Errorf("unexpected query: %s", gotQuery)
	}
	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1", len(issues))
	}

	iss := issues[0]
	if iss.ID != 3 {
		t.Errorf("ID = %d, want 3", iss.ID)
	}
	if iss.Title != "Crash on startup" {
		t.Errorf("Title = %q", iss.Title)
	}
	if iss.Author != "alice" || iss.Owner != "alice" {
		t.Errorf("Author/Owner = %q/%q", iss.Author, iss.Owner)
	}
	if iss.Status != "Accepted" || iss.State != "open" {
		t.Errorf("Status/State = %q/%q", iss.Status, iss.State)
	}
	if len(iss.Labels) != 2 || iss.Labels[0] != "Type-Defect" {
		t.Errorf("Labels = %v", iss.Labels)
	}
	if iss.Link != "http://code.google.com/p/myproject/issues/detail?id=3" {
		t.Errorf("Link = %q", iss.Link)
	}
}

func TestCommentsDecodesMergedInto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, commentFeedPage)
	}))
	defer srv.Close()

	p := NewClient().WithBaseURL(srv.URL).Project("myproject")
	comments, err := p.Comments(context.Background(), 3, 1, 500)
	if err != nil {
		t.Fatalf("Comments failed: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(comments))
	}

	merged := comments[0]
	if merged.MergedInto == nil || *merged.MergedInto != 7 {
		t.Errorf("MergedInto = %v, want 7", merged.MergedInto)
	}
	if merged.Content != "" {
		t.Errorf("merged comment should have empty content, got %q", merged.Content)
	}

	plain := comments[1]
	if plain.MergedInto != nil {
		t.Error("plain comment should have no merged-into marker")
	}
	if plain.Author != "carol" || plain.Content != "me too" {
		t.Errorf("comment = %+v", plain)
	}
}

func TestEmptyFeedPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"feed": {}}`)
	}))
	defer srv.Close()

	p := NewClient().WithBaseURL(srv.URL).Project("myproject")
	issues, err := p.Issues(context.Background(), 501, 500)
	if err != nil {
		t.Fatalf("Issues failed: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected empty page, got %d entries", len(issues))
	}
}

func TestFeedErrorSurfacesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such project", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewClient().WithBaseURL(srv.URL).Project("gone")
	if _, err := p.Issues(context.Background(), 1, 500); err == nil {
		t.Fatal("expected error for 404 feed")
	}
}

func TestParseEntryID(t *testing.T) {
	tests := []struct {
		in string
		id int
		ok bool
	}{
		{"http://code.google.com/feeds/issues/p/x/issues/full/42", 42, true},
		{"tag:google.com,2009:issue-7", 7, true},
		{"no-number-here", 0, false},
	}
	for _, tt := range tests {
		id, ok := parseEntryID(tt.in)
		if ok != tt.ok || id != tt.id {
			t.Errorf("parseEntryID(%q) = %d,%v want %d,%v", tt.in, id, ok, tt.id, tt.ok)
		}
	}
}
