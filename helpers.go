package quill

import (
	"net/url"
	"path"
	"strings"
)

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// Summary returns the first plain-text paragraph of a Markdown body,
// truncated to max runes on a word boundary. Used for feed descriptions
// when the document has no explicit summary.
func Summary(body string, max int) string {
	for _, para := range strings.Split(body, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" || strings.HasPrefix(para, "#") || strings.HasPrefix(para, "```") ||
			strings.HasPrefix(para, "!") || strings.HasPrefix(para, "---") {
			continue
		}
		text := strings.Join(strings.Fields(para), " ")
		if len([]rune(text)) <= max {
			return text
		}
		runes := []rune(text)[:max]
		if idx := strings.LastIndex(string(runes), " "); idx > 0 {
			runes = []rune(string(runes)[:idx])
		}
		return strings.TrimRight(string(runes), " ,.;:") + "…"
	}
	return ""
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
