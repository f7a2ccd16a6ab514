package quill

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tailtq/quill/content"
)

func date(s string) time.Time {
	t, err := time.Parse(content.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testDocs() []content.Document {
	return []content.Document{
		{Slug: "caching", Kind: content.KindPost, Title: "Caching", Author: "Tai Le", Date: date("2022-05-01"), Tags: []string{"Python", "Back-end"}, Body: "b1", SourcePath: "posts/2022-05-01-caching.md"},
		{Slug: "asyncio", Kind: content.KindPost, Title: "Async IO", Date: date("2022-08-20"), Tags: []string{"Python", "Concurrency"}, Body: "b2", SourcePath: "posts/2022-08-20-asyncio.md"},
		{Slug: "patterns", Kind: content.KindPost, Title: "Design Patterns", Date: date("2022-03-14"), Tags: []string{"python"}, Body: "b3", SourcePath: "posts/2022-03-14-patterns.md"},
		{Slug: "wip", Kind: content.KindPost, Title: "WIP", Date: date("2022-09-01"), Draft: true, Body: "b4", SourcePath: "posts/2022-09-01-wip.md"},
		{Slug: "about", Kind: content.KindPage, Title: "About me", Order: 1, Body: "hi", SourcePath: "pages/about.md"},
		{Slug: "projects", Kind: content.KindPage, Title: "Projects", Order: 2, Body: "stuff", SourcePath: "pages/projects.md"},
	}
}

func TestReplaceAllAndListPosts(t *testing.T) {
	s := setupTestStore(t)
	if err := s.ReplaceAll(testDocs()); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	posts, err := s.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("ListPosts count = %d, want 3 (drafts excluded)", len(posts))
	}
	wantOrder := []string{"asyncio", "caching", "patterns"}
	for i, slug := range wantOrder {
		if posts[i].Slug != slug {
			t.Errorf("posts[%d].Slug = %q, want %q", i, posts[i].Slug, slug)
		}
	}
	if posts[1].Author != "Tai Le" {
		t.Errorf("Author = %q, want %q", posts[1].Author, "Tai Le")
	}
	if !posts[1].Date.Equal(date("2022-05-01")) {
		t.Errorf("Date = %v, want 2022-05-01", posts[1].Date)
	}
	if len(posts[1].Tags) != 2 || posts[1].Tags[0] != "Python" || posts[1].Tags[1] != "Back-end" {
		t.Errorf("Tags = %v, want [Python Back-end]", posts[1].Tags)
	}
}

func TestReplaceAllSwapsWholeSet(t *testing.T) {
	s := setupTestStore(t)
	if err := s.ReplaceAll(testDocs()); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}
	// A second load with one document must fully replace the first set.
	if err := s.ReplaceAll(testDocs()[:1]); err != nil {
		t.Fatalf("second ReplaceAll failed: %v", err)
	}
	posts, err := s.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "caching" {
		t.Errorf("posts = %v, want only caching", posts)
	}
}

func TestListPostsByTag(t *testing.T) {
	s := setupTestStore(t)
	if err := s.ReplaceAll(testDocs()); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	got, err := s.ListPosts("python")
	if err != nil {
		t.Fatalf("ListPosts(python) failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("ListPosts(python) count = %d, want 3", len(got))
	}

	// Tag matching is case-insensitive.
	got, err = s.ListPosts("Back-End")
	if err != nil {
		t.Fatalf("ListPosts(Back-End) failed: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "caching" {
		t.Errorf("ListPosts(Back-End) = %v, want [caching]", got)
	}

	got, err = s.ListPosts("nonexistent")
	if err != nil {
		t.Fatalf("ListPosts(nonexistent) failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListPosts(nonexistent) count = %d, want 0", len(got))
	}
}

func TestListPages(t *testing.T) {
	s := setupTestStore(t)
	if err := s.ReplaceAll(testDocs()); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}
	pages, err := s.ListPages()
	if err != nil {
		t.Fatalf("ListPages failed: %v", err)
	}
	if len(pages) != 2 || pages[0].Slug != "about" || pages[1].Slug != "projects" {
		t.Errorf("pages = %v, want [about projects]", pages)
	}
}

func TestListTags(t *testing.T) {
	s := setupTestStore(t)
	if err := s.ReplaceAll(testDocs()); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}
	tags, err := s.ListTags()
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	want := []string{"back-end", "concurrency", "python"}
	if len(tags) != len(want) {
		t.Fatalf("ListTags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("ListTags[%d] = %q, want %q", i, tags[i], want[i])
		}
	}
}

func TestGetDocument(t *testing.T) {
	s := setupTestStore(t)
	if err := s.ReplaceAll(testDocs()); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	doc, err := s.GetDocument("caching")
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if doc.Title != "Caching" || doc.Kind != content.KindPost {
		t.Errorf("got %+v", doc)
	}

	_, err = s.GetDocument("nonexistent")
	if !errors.Is(err, content.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// Drafts are hidden from GetDocument but visible to GetDocumentAny.
	_, err = s.GetDocument("wip")
	if !errors.Is(err, content.ErrNotFound) {
		t.Errorf("draft should be hidden, got %v", err)
	}
	draft, err := s.GetDocumentAny("wip")
	if err != nil {
		t.Fatalf("GetDocumentAny failed: %v", err)
	}
	if !draft.Draft {
		t.Error("Draft flag should survive the round trip")
	}
}

func TestListAllIncludesDrafts(t *testing.T) {
	s := setupTestStore(t)
	if err := s.ReplaceAll(testDocs()); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}
	all, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 6 {
		t.Errorf("ListAll count = %d, want 6", len(all))
	}
}
