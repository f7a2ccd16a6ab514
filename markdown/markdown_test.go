package markdown

import (
	"bytes"
	"strings"
	"testing"
)

func render(md string) string {
	var buf bytes.Buffer
	(&Renderer{}).Render(&buf, md)
	return buf.String()
}

func TestInlineBoldItalic(t *testing.T) {
	r := &Renderer{}
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"_italic_", "<em>italic</em>"},
		{"text **bold** more", "text <strong>bold</strong> more"},
		{"**bold *italic* text**", "<strong>bold <em>italic</em> text</strong>"},
	}
	for _, tt := range tests {
		got := r.inline(tt.input)
		if got != tt.expected {
			t.Errorf("inline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestInlineCodeNotFormatted(t *testing.T) {
	got := (&Renderer{}).inline("use `a * b * c` here")
	if !strings.Contains(got, "<code>a * b * c</code>") {
		t.Errorf("inline code should be preserved verbatim: %q", got)
	}
	if strings.Contains(got, "<em>") {
		t.Errorf("content inside backticks must not be italicized: %q", got)
	}
}

func TestInlineLinks(t *testing.T) {
	r := &Renderer{}
	got := r.inline("[home](/about/)")
	if got != `<a href="/about/">home</a>` {
		t.Errorf("relative link = %q", got)
	}
	got = r.inline("[ext](https://example.com)")
	if !strings.Contains(got, `target="_blank"`) || !strings.Contains(got, `rel="noopener noreferrer"`) {
		t.Errorf("external link should open in a new tab: %q", got)
	}
	got = r.inline("[bad](javascript:alert(1))")
	if strings.Contains(got, "javascript") {
		t.Errorf("unsafe scheme should be stripped: %q", got)
	}
}

func TestInlineImages(t *testing.T) {
	r := &Renderer{AssetPrefix: "/assets"}
	got := r.inline("![diagram](images/cache.png)")
	if !strings.Contains(got, `src="/assets/images/cache.png"`) {
		t.Errorf("relative asset path should get the prefix: %q", got)
	}
	if !strings.Contains(got, `alt="diagram"`) {
		t.Errorf("missing alt text: %q", got)
	}

	got = (&Renderer{}).inline("![abs](/img/x.png)")
	if !strings.Contains(got, `src="/img/x.png"`) {
		t.Errorf("absolute path should pass through: %q", got)
	}
}

func TestRenderHeadings(t *testing.T) {
	got := render("# Title\n\n## Section\n\n#### Deep")
	for _, want := range []string{"<h1>Title</h1>", "<h2>Section</h2>", "<h4>Deep</h4>"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
}

func TestRenderLists(t *testing.T) {
	got := render("- one\n- two\n\n1. first\n2. second")
	if !strings.Contains(got, "<ul><li>one</li><li>two</li></ul>") {
		t.Errorf("unordered list wrong: %q", got)
	}
	if !strings.Contains(got, "<ol><li>first</li><li>second</li></ol>") {
		t.Errorf("ordered list wrong: %q", got)
	}
}

func TestRenderCodeBlock(t *testing.T) {
	got := render("```python\nx = cache.get(key)\n```")
	if !strings.Contains(got, `class="language-python"`) {
		t.Errorf("missing language class: %q", got)
	}
	if !strings.Contains(got, "x = cache.get(key)\n") {
		t.Errorf("missing code content: %q", got)
	}
}

func TestRenderCodeBlockEscapesHTML(t *testing.T) {
	got := render("```\n<b>not bold</b>\n```")
	if strings.Contains(got, "<b>") {
		t.Errorf("code block content must be escaped: %q", got)
	}
	if !strings.Contains(got, "&lt;b&gt;") {
		t.Errorf("expected escaped tags: %q", got)
	}
}

func TestRenderUnclosedCodeBlock(t *testing.T) {
	got := render("```\ndangling")
	if !strings.Contains(got, "</code></pre>") {
		t.Errorf("unclosed code block should still be terminated: %q", got)
	}
}

func TestRenderParagraphsAndQuotes(t *testing.T) {
	got := render("line one\nline two\n\n> quoted")
	if !strings.Contains(got, "<p>line one line two</p>") {
		t.Errorf("paragraph joining wrong: %q", got)
	}
	if !strings.Contains(got, "<blockquote>quoted</blockquote>") {
		t.Errorf("blockquote wrong: %q", got)
	}
}

func TestRenderHorizontalRule(t *testing.T) {
	got := render("above\n\n---\n\nbelow")
	if !strings.Contains(got, "<hr/>") {
		t.Errorf("missing hr: %q", got)
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/blog/post/", "/blog/post/"},
		{"#section", "#section"},
		{"https://example.com", "https://example.com"},
		{"mailto:me@example.com", "mailto:me@example.com"},
		{"javascript:alert(1)", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.input); got != tt.expected {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
