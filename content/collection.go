package content

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

const (
	postsDir = "posts"
	pagesDir = "pages"
)

// rePostName matches the date-prefixed post filename convention,
// e.g. 2022-05-01-caching.md.
var rePostName = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)\.md$`)

// Collection is an immutable set of documents loaded from a content
// directory. Enumeration order is deterministic: posts by date descending
// (ties broken by slug), pages by their order hint.
type Collection struct {
	posts  []Document
	pages  []Document
	bySlug map[string]Document
}

// Load walks dir and parses every Markdown document under posts/ and
// pages/. It fails on the first malformed file, with a diagnostic naming
// that file; there is no partial result.
//
// Media assets referenced by document bodies are not resolved or checked
// here; the collection only owns the documents themselves.
func Load(dir string) (*Collection, error) {
	c := &Collection{bySlug: make(map[string]Document)}

	if err := c.loadDir(dir, postsDir, KindPost); err != nil {
		return nil, err
	}
	if err := c.loadDir(dir, pagesDir, KindPage); err != nil {
		return nil, err
	}

	sort.SliceStable(c.posts, func(i, j int) bool {
		if !c.posts[i].Date.Equal(c.posts[j].Date) {
			return c.posts[i].Date.After(c.posts[j].Date)
		}
		return c.posts[i].Slug < c.posts[j].Slug
	})
	sort.SliceStable(c.pages, func(i, j int) bool {
		if c.pages[i].Order != c.pages[j].Order {
			return c.pages[i].Order < c.pages[j].Order
		}
		return c.pages[i].Slug < c.pages[j].Slug
	})
	return c, nil
}

func (c *Collection) loadDir(root, sub string, kind Kind) error {
	dir := filepath.Join(root, sub)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("content: read %s: %w", rel, err)
		}
		doc, err := Parse(src)
		if err != nil {
			return fmt.Errorf("content: %s: %w", rel, err)
		}
		doc.Kind = kind
		doc.SourcePath = rel

		slug, fileDate := splitName(d.Name(), kind)
		doc.Slug = slug
		if doc.Date.IsZero() && !fileDate.IsZero() {
			doc.Date = fileDate
		}
		if err := doc.validate(); err != nil {
			return fmt.Errorf("content: %s: %v", rel, err)
		}
		if prev, ok := c.bySlug[slug]; ok {
			return fmt.Errorf("content: %s: duplicate slug %q (also %s)", rel, slug, prev.SourcePath)
		}

		c.bySlug[slug] = doc
		if kind == KindPage {
			c.pages = append(c.pages, doc)
		} else {
			c.posts = append(c.posts, doc)
		}
		return nil
	})
}

// splitName derives the slug from the filename, stripping the date prefix
// on posts. The front-matter date takes precedence over the filename date;
// the filename date is only a fallback.
func splitName(name string, kind Kind) (slug string, date time.Time) {
	if kind == KindPost {
		if m := rePostName.FindStringSubmatch(name); m != nil {
			if t, err := time.Parse(DateFormat, m[1]); err == nil {
				return m[2], t
			}
			return m[2], time.Time{}
		}
	}
	return strings.TrimSuffix(name, ".md"), time.Time{}
}

// Posts returns all posts, most recent first. The returned slice is shared;
// callers must not modify it.
func (c *Collection) Posts() []Document {
	return c.posts
}

// Pages returns the static pages ordered by their order hint.
func (c *Collection) Pages() []Document {
	return c.pages
}

// BySlug returns the document with the given slug or ErrNotFound.
func (c *Collection) BySlug(slug string) (Document, error) {
	doc, ok := c.bySlug[slug]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// Tags returns the sorted, deduplicated, lowercased tags across all posts.
func (c *Collection) Tags() []string {
	set := make(map[string]struct{})
	for _, p := range c.posts {
		for _, t := range p.Tags {
			set[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
		}
	}
	var out []string
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Len returns the total number of documents in the collection.
func (c *Collection) Len() int {
	return len(c.bySlug)
}
