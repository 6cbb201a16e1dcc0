// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-02
// Last Modified: 2026-03-02

package codec

import "testing"

func TestExtractSourceID(t *testing.T) {
	c := New("myproject")

	tests := []struct {
		name  string
		body  string
		id    int
		found bool
	}{
		{
			name:  "footer at end of body",
			body:  "some text\n\n\n_Original issue: http://code.google.com/p/myproject/issues/detail?id=42_",
			id:    42,
			found: true,
		},
		{
			name:  "footer alone",
			body:  "_Original issue: http://code.google.com/p/myproject/issues/detail?id=1_",
			id:    1,
			found: true,
		},
		{
			name:  "bare number does not match",
			body:  "fixed in revision 42",
			found: false,
		},
		{
			name:  "permalink without footer template does not match",
			body:  "see http://code.google.com/p/myproject/issues/detail?id=42 for details",
			found: false,
		},
		{
			name:  "other project does not match",
			body:  "_Original issue: http://code.google.com/p/otherproject/issues/detail?id=42_",
			found: false,
		},
		{
			name:  "empty body",
			body:  "",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, found := c.ExtractSourceID(tt.body)
			if found != tt.found {
				t.Fatalf("found = %v, want %v", found, tt.found)
			}
			if found && id != tt.id {
				t.Fatalf("id = %d, want %d", id, tt.id)
			}
		})
	}
}

// Creation and reconciliation must share one template byte for byte.
func TestBackReferenceRoundTrip(t *testing.T) {
	c := New("roundtrip")

	for _, id := range []int{1, 42, 9999} {
		body := "header\n\ncontent\n\n\n" + c.BackReference(id)
		got, found := c.ExtractSourceID(body)
		if !found {
			t.Fatalf("footer for id %d not recognized", id)
		}
		if got != id {
			t.Fatalf("extracted %d, want %d", got, id)
		}
	}
}

func TestBackReferenceForLink(t *testing.T) {
	c := New("myproject")
	link := "http://code.google.com/p/myproject/issues/detail?id=7"
	got := c.BackReferenceFor(link)
	want := "_Original issue: http://code.google.com/p/myproject/issues/detail?id=7_"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got != c.BackReference(7) {
		t.Fatal("link form and id form rendered different footers")
	}
}

func TestProjectNameIsQuoted(t *testing.T) {
	// A project name containing regex metacharacters must not blow up the
	// pattern or widen what it matches.
	c := New("my.project")
	if _, found := c.ExtractSourceID("_Original issue: http://code.google.com/p/myXproject/issues/detail?id=3_"); found {
		t.Fatal("dot in project name matched as wildcard")
	}
	if id, found := c.ExtractSourceID(c.BackReference(3)); !found || id != 3 {
		t.Fatal("quoted project name failed round trip")
	}
}
