package content

import (
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	src := []byte(`---
title: "Caching"
author: Tai Le
date: 2022-05-01
tags: [Python, Back-end]
icon: /assets/icons/caching.png
---

# Caching

Body text here.
`)
	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Title != "Caching" {
		t.Errorf("Title = %q, want %q", doc.Title, "Caching")
	}
	if doc.Author != "Tai Le" {
		t.Errorf("Author = %q, want %q", doc.Author, "Tai Le")
	}
	want := time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC)
	if !doc.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", doc.Date, want)
	}
	if len(doc.Tags) != 2 || doc.Tags[0] != "Python" || doc.Tags[1] != "Back-end" {
		t.Errorf("Tags = %v, want [Python Back-end]", doc.Tags)
	}
	if doc.Icon != "/assets/icons/caching.png" {
		t.Errorf("Icon = %q", doc.Icon)
	}
	if !strings.HasPrefix(doc.Body, "# Caching") {
		t.Errorf("Body should start with heading, got %q", doc.Body)
	}
}

func TestParseNoDate(t *testing.T) {
	doc, err := Parse([]byte("---\ntitle: About me\norder: 2\n---\nHello.\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !doc.Date.IsZero() {
		t.Errorf("Date should be zero when absent, got %v", doc.Date)
	}
	if doc.Order != 2 {
		t.Errorf("Order = %d, want 2", doc.Order)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"no front matter", "# Just a body\n", "missing front matter"},
		{"unterminated block", "---\ntitle: X\n", "unterminated front matter"},
		{"bad yaml", "---\ntitle: [\n---\nbody\n", "malformed front matter"},
		{"bad date", "---\ntitle: X\ndate: May 1st\n---\nbody\n", "invalid date"},
		{"unknown key", "---\ntitle: X\ncolour: red\n---\nbody\n", "malformed front matter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestParseCRLF(t *testing.T) {
	src := strings.ReplaceAll("---\ntitle: Windows\ndate: 2023-01-02\n---\nbody\n", "\n", "\r\n")
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed on CRLF input: %v", err)
	}
	if doc.Title != "Windows" {
		t.Errorf("Title = %q", doc.Title)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	orig := Document{
		Slug:   "caching",
		Kind:   KindPost,
		Title:  "Caching",
		Author: "Tai Le",
		Date:   time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC),
		Tags:   []string{"Python", "Back-end"},
		Icon:   "/assets/icons/caching.png",
		Body:   "Body text.\n",
	}

	raw, err := orig.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("re-Parse failed: %v", err)
	}

	if got.Title != orig.Title {
		t.Errorf("Title = %q, want %q", got.Title, orig.Title)
	}
	if got.Author != orig.Author {
		t.Errorf("Author = %q, want %q", got.Author, orig.Author)
	}
	if !got.Date.Equal(orig.Date) {
		t.Errorf("Date = %v, want %v", got.Date, orig.Date)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "Python" || got.Tags[1] != "Back-end" {
		t.Errorf("Tags = %v, want %v", got.Tags, orig.Tags)
	}
	if got.Icon != orig.Icon {
		t.Errorf("Icon = %q, want %q", got.Icon, orig.Icon)
	}
	if got.Body != orig.Body {
		t.Errorf("Body = %q, want %q", got.Body, orig.Body)
	}
}

func TestEncodeRoundTripPageOrder(t *testing.T) {
	orig := Document{
		Slug:  "about",
		Kind:  KindPage,
		Title: "About me",
		Order: 3,
		Body:  "Hello.\n",
	}
	raw, err := orig.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("re-Parse failed: %v", err)
	}
	if got.Order != 3 {
		t.Errorf("Order = %d, want 3", got.Order)
	}
}
