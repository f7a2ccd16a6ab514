package content

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Parse splits src into a front-matter block and a body and decodes the
// metadata. The file must begin with a "---" line; a missing or malformed
// block is an error. Callers wrap the error with the source path so
// diagnostics name the offending file.
func Parse(src []byte) (Document, error) {
	head, body, err := split(src)
	if err != nil {
		return Document{}, err
	}

	var fm frontMatter
	dec := yaml.NewDecoder(bytes.NewReader(head))
	dec.KnownFields(true)
	if err := dec.Decode(&fm); err != nil {
		return Document{}, fmt.Errorf("malformed front matter: %w", err)
	}

	doc := Document{
		Title:  strings.TrimSpace(fm.Title),
		Author: strings.TrimSpace(fm.Author),
		Tags:   trimTags(fm.Tags),
		Icon:   strings.TrimSpace(fm.Icon),
		Draft:  fm.Draft,
		Body:   string(body),
	}
	if fm.Order != nil {
		doc.Order = *fm.Order
	}
	if fm.Date != "" {
		t, err := time.Parse(DateFormat, fm.Date)
		if err != nil {
			return Document{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", fm.Date)
		}
		doc.Date = t
	}
	return doc, nil
}

// split separates the delimited metadata block from the body. The opening
// delimiter must be the first line; the closing delimiter must follow.
func split(src []byte) (head, body []byte, err error) {
	rest, ok := bytes.CutPrefix(src, []byte(delimiter+"\n"))
	if !ok {
		// Tolerate CRLF line endings in the delimiter line only; the
		// YAML decoder handles them inside the block.
		rest, ok = bytes.CutPrefix(src, []byte(delimiter+"\r\n"))
	}
	if !ok {
		return nil, nil, fmt.Errorf("missing front matter: file must start with %q", delimiter)
	}
	idx := bytes.Index(rest, []byte("\n"+delimiter))
	if idx < 0 {
		return nil, nil, fmt.Errorf("unterminated front matter: no closing %q", delimiter)
	}
	head = rest[:idx+1]
	body = rest[idx+1+len(delimiter):]
	// Drop the remainder of the closing delimiter line.
	if nl := bytes.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = nil
	}
	return head, bytes.TrimLeft(body, "\n"), nil
}

func trimTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	}
	return out
}
