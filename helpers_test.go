package quill

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"  Caching & Invalidation!  ", "caching-invalidation"},
		{"Already-Slugged", "already-slugged"},
		{"123 Go", "123-go"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.expected {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		expected string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"blog", "caching"}, "https://example.com/blog/caching/"},
		{"https://example.com/sub", []string{"about"}, "https://example.com/sub/about/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.expected {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.expected)
		}
	}
}

func TestSummary(t *testing.T) {
	body := "# Heading\n\n![pic](img.png)\n\nFirst real paragraph with some words.\n\nSecond paragraph."
	got := Summary(body, 240)
	if got != "First real paragraph with some words." {
		t.Errorf("Summary = %q", got)
	}
}

func TestSummaryTruncatesOnWordBoundary(t *testing.T) {
	got := Summary("one two three four five", 12)
	if got != "one two…" {
		t.Errorf("Summary = %q, want %q", got, "one two…")
	}
}

func TestSummaryEmptyBody(t *testing.T) {
	if got := Summary("# only a heading\n\n```\ncode\n```", 100); got != "" {
		t.Errorf("Summary = %q, want empty", got)
	}
}
