// Package markdown renders document bodies to HTML as templ components.
// It covers the lightweight markup the content collection uses: headings,
// lists, code blocks, blockquotes, images, and links. Bodies pass through
// structurally unchanged; no content is dropped or reordered.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold        = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic      = regexp.MustCompile(`\*([^*]+)\*`)
	reItalicUnder = regexp.MustCompile(`_([^_]+)_`)
	reInlineCode  = regexp.MustCompile("`([^`]+)`")
	reLink        = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	reImg         = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)
	reOrdered     = regexp.MustCompile(`^(\d+)\.\s`)
	reHeading     = regexp.MustCompile(`^(#{1,4})\s+(.*)$`)
)

// Renderer converts Markdown bodies to HTML. The zero value is usable;
// AssetPrefix, when set, is prepended to relative image paths so documents
// can reference media relative to the content tree.
type Renderer struct {
	AssetPrefix string
}

// Component returns a templ.Component that renders md as HTML.
func (r *Renderer) Component(md string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		r.Render(&buf, md)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Render writes the HTML representation of md to buf.
func (r *Renderer) Render(buf *bytes.Buffer, md string) {
	var st state
	for _, raw := range strings.Split(md, "\n") {
		line := strings.TrimRight(raw, "\r")

		if strings.HasPrefix(line, "```") {
			if st.inCode {
				st.closeCode(buf)
			} else {
				st.closeBlocks(buf)
				st.openCode(buf, strings.TrimSpace(line[3:]))
			}
			continue
		}
		if st.inCode {
			buf.WriteString(html.EscapeString(line))
			buf.WriteString("\n")
			continue
		}
		if strings.TrimSpace(line) == "" {
			st.closeBlocks(buf)
			continue
		}

		switch {
		case strings.HasPrefix(line, "---"):
			st.closeBlocks(buf)
			buf.WriteString("<hr/>")
		case reHeading.MatchString(line):
			st.closeBlocks(buf)
			m := reHeading.FindStringSubmatch(line)
			level := strconv.Itoa(len(m[1]))
			buf.WriteString("<h" + level + ">")
			buf.WriteString(r.inline(strings.TrimSpace(m[2])))
			buf.WriteString("</h" + level + ">")
		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
			if !st.inList {
				st.closeBlocks(buf)
				buf.WriteString("<ul>")
				st.inList = true
			}
			buf.WriteString("<li>")
			buf.WriteString(r.inline(strings.TrimSpace(line[2:])))
			buf.WriteString("</li>")
		case reOrdered.MatchString(line):
			if !st.inOrdered {
				st.closeBlocks(buf)
				buf.WriteString("<ol>")
				st.inOrdered = true
			}
			buf.WriteString("<li>")
			buf.WriteString(r.inline(strings.TrimSpace(reOrdered.ReplaceAllString(line, ""))))
			buf.WriteString("</li>")
		case strings.HasPrefix(line, "> "):
			if !st.inQuote {
				st.closeBlocks(buf)
				buf.WriteString("<blockquote>")
				st.inQuote = true
			}
			buf.WriteString(r.inline(strings.TrimSpace(line[2:])))
		default:
			if !st.inPara {
				st.closeBlocks(buf)
				buf.WriteString("<p>")
				st.inPara = true
			} else {
				buf.WriteString(" ")
			}
			buf.WriteString(r.inline(strings.TrimSpace(line)))
		}
	}
	st.closeBlocks(buf)
	st.closeCode(buf)
}

// state tracks which block element is currently open.
type state struct {
	inPara    bool
	inList    bool
	inOrdered bool
	inQuote   bool
	inCode    bool
	codeLang  bool
}

func (st *state) openCode(buf *bytes.Buffer, lang string) {
	if lang != "" {
		st.codeLang = true
		escaped := html.EscapeString(lang)
		buf.WriteString(`<div class="code-block-wrapper"><span class="code-lang">` + escaped + `</span>`)
		buf.WriteString(`<pre class="code-block"><code class="language-` + escaped + `">`)
	} else {
		buf.WriteString(`<pre class="code-block"><code>`)
	}
	st.inCode = true
}

func (st *state) closeCode(buf *bytes.Buffer) {
	if st.inCode {
		buf.WriteString("</code></pre>")
		if st.codeLang {
			buf.WriteString("</div>")
			st.codeLang = false
		}
		st.inCode = false
	}
}

func (st *state) closeBlocks(buf *bytes.Buffer) {
	if st.inPara {
		buf.WriteString("</p>")
		st.inPara = false
	}
	if st.inList {
		buf.WriteString("</ul>")
		st.inList = false
	}
	if st.inOrdered {
		buf.WriteString("</ol>")
		st.inOrdered = false
	}
	if st.inQuote {
		buf.WriteString("</blockquote>")
		st.inQuote = false
	}
}

// inline applies inline formatting (images, links, code, bold, italic) to s.
func (r *Renderer) inline(s string) string {
	escaped := html.EscapeString(s)

	escaped = reImg.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reImg.FindStringSubmatch(m)
		src := r.resolveAsset(match[2])
		if src == "" {
			return match[1]
		}
		return `<img loading="lazy" decoding="async" alt="` + match[1] + `" src="` + src + `"/>`
	})
	escaped = reLink.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		href := SafeURL(match[2])
		if href == "" {
			return match[1]
		}
		attrs := ""
		if strings.Contains(href, "://") {
			attrs = ` target="_blank" rel="noopener noreferrer"`
		}
		return `<a href="` + href + `"` + attrs + `>` + match[1] + `</a>`
	})

	// Inline code is swapped for placeholders first so the bold/italic
	// regexes never touch content inside backticks.
	var codeSpans []string
	escaped = reInlineCode.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reInlineCode.FindStringSubmatch(m)
		placeholder := "\x00C" + strconv.Itoa(len(codeSpans)) + "\x00"
		codeSpans = append(codeSpans, "<code>"+match[1]+"</code>")
		return placeholder
	})
	escaped = applyOutsideTags(escaped, func(seg string) string {
		seg = reBold.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reItalic.ReplaceAllString(seg, "<em>$1</em>")
		seg = reItalicUnder.ReplaceAllString(seg, "<em>$1</em>")
		return seg
	})
	for i, code := range codeSpans {
		escaped = strings.Replace(escaped, "\x00C"+strconv.Itoa(i)+"\x00", code, 1)
	}
	return escaped
}

// resolveAsset sanitizes an image source and applies the asset prefix to
// relative paths. The existence of the referenced asset is not checked.
func (r *Renderer) resolveAsset(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if !strings.HasPrefix(val, "/") && !strings.Contains(val, "://") {
		if r.AssetPrefix != "" {
			val = strings.TrimSuffix(r.AssetPrefix, "/") + "/" + val
		}
		if !strings.HasPrefix(val, "/") {
			return html.EscapeString(val)
		}
	}
	return SafeURL(val)
}

// applyOutsideTags applies fn only to text segments outside HTML tags so
// formatting regexes never corrupt URLs inside attributes.
func applyOutsideTags(s string, fn func(string) string) string {
	var buf strings.Builder
	for len(s) > 0 {
		lt := strings.Index(s, "<")
		if lt < 0 {
			buf.WriteString(fn(s))
			break
		}
		if lt > 0 {
			buf.WriteString(fn(s[:lt]))
		}
		gt := strings.Index(s[lt:], ">")
		if gt < 0 {
			buf.WriteString(s[lt:])
			break
		}
		buf.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return buf.String()
}

// SafeURL validates and escapes a URL for use in an HTML attribute.
// Relative paths, fragments, and http/https/mailto links pass; everything
// else is rejected.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto":
		return html.EscapeString(val)
	default:
		return ""
	}
}
