// Package content implements the file-based content collection: Markdown
// documents with a front-matter block, loaded from a content directory and
// exposed to the renderer as an immutable, date-ordered set.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("content: document not found")

// Kind distinguishes dated posts from ordered static pages.
type Kind string

const (
	KindPost Kind = "post"
	KindPage Kind = "page"
)

// DateFormat is the calendar date layout used in front matter and in
// post filenames.
const DateFormat = "2006-01-02"

// Document is one unit of published content: a post or a static page.
// Documents are immutable once loaded; edits happen on disk followed by
// a reload.
type Document struct {
	Slug   string
	Kind   Kind
	Title  string
	Author string
	Date   time.Time // zero value means no date
	Tags   []string
	Icon   string
	Order  int // ordering hint for pages; unused for posts
	Draft  bool
	Body   string

	// SourcePath is the file the document was loaded from, relative to
	// the content root. Used in diagnostics.
	SourcePath string
}

// Link returns the canonical site-relative URL for the document.
func (d Document) Link() string {
	if d.Kind == KindPage {
		return "/" + d.Slug + "/"
	}
	return "/blog/" + d.Slug + "/"
}

// HasTag reports whether the document carries the given tag,
// case-insensitively.
func (d Document) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range d.Tags {
		if strings.ToLower(strings.TrimSpace(t)) == tag {
			return true
		}
	}
	return false
}

// frontMatter is the YAML representation of a document's metadata block.
type frontMatter struct {
	Title  string   `yaml:"title"`
	Author string   `yaml:"author,omitempty"`
	Date   string   `yaml:"date,omitempty"`
	Tags   []string `yaml:"tags,omitempty"`
	Icon   string   `yaml:"icon,omitempty"`
	Order  *int     `yaml:"order,omitempty"`
	Draft  bool     `yaml:"draft,omitempty"`
}

// EncodeFrontMatter serializes the document's metadata block, delimiters
// included. Re-parsing the output yields the same field values.
func (d Document) EncodeFrontMatter() ([]byte, error) {
	fm := frontMatter{
		Title:  d.Title,
		Author: d.Author,
		Tags:   d.Tags,
		Icon:   d.Icon,
		Draft:  d.Draft,
	}
	if !d.Date.IsZero() {
		fm.Date = d.Date.Format(DateFormat)
	}
	if d.Kind == KindPage {
		order := d.Order
		fm.Order = &order
	}
	body, err := yaml.Marshal(&fm)
	if err != nil {
		return nil, fmt.Errorf("content: encode front matter for %q: %w", d.Slug, err)
	}
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	buf.Write(body)
	buf.WriteString(delimiter + "\n")
	return buf.Bytes(), nil
}

// Encode serializes the full document: front matter followed by the body.
func (d Document) Encode() ([]byte, error) {
	head, err := d.EncodeFrontMatter()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Write(head)
	buf.WriteString("\n")
	buf.WriteString(d.Body)
	if !strings.HasSuffix(d.Body, "\n") {
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// validate enforces the document invariants: a non-empty title and body.
// The date, when present, was already validated during parsing.
func (d Document) validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return errors.New("empty title")
	}
	if strings.TrimSpace(d.Body) == "" {
		return errors.New("empty body")
	}
	return nil
}
