package views

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/tailtq/quill/content"
)

// Home renders the post listing page with the tag filter bar.
func Home(site Site, posts, pages []content.Document, activeTag string, tags []string) templ.Component {
	meta := PageMeta{
		Title:       site.Name,
		Description: site.Description,
		URL:         buildURL(site.URL),
		OGType:      "website",
	}
	return layout(site, meta, pages, WebsiteJsonLD(site), PostList(posts, activeTag, tags))
}

// PostList renders the tag bar and the list of posts. Served standalone
// for htmx partial updates when filtering by tag.
func PostList(posts []content.Document, activeTag string, tags []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<section id="posts" class="post-list">`)

		if len(tags) > 0 {
			buf.WriteString(`<nav class="tag-bar">`)
			writeTagLink(&buf, "All", "/", activeTag == "")
			for _, t := range tags {
				writeTagLink(&buf, t, "/?tag="+url.QueryEscape(t), t == activeTag)
			}
			buf.WriteString(`</nav>`)
		}

		if len(posts) == 0 {
			buf.WriteString(`<p class="empty">No posts yet.</p>`)
		}
		for _, p := range posts {
			buf.WriteString(`<article class="post-card">`)
			if p.Icon != "" {
				buf.WriteString(`<img class="post-icon" alt="" src="` + esc(p.Icon) + `"/>`)
			}
			buf.WriteString(`<h2><a href="` + esc(p.Link()) + `">` + esc(p.Title) + `</a></h2>`)
			if d := FormatDate(p.Date); d != "" {
				buf.WriteString(`<time datetime="` + p.Date.Format("2006-01-02") + `">` + d + `</time>`)
			}
			if len(p.Tags) > 0 {
				buf.WriteString(`<ul class="tags">`)
				for _, t := range p.Tags {
					buf.WriteString(`<li>` + esc(t) + `</li>`)
				}
				buf.WriteString(`</ul>`)
			}
			buf.WriteString(`</article>`)
		}
		buf.WriteString(`</section>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeTagLink(buf *bytes.Buffer, label, href string, active bool) {
	class := "tag"
	if active {
		class = "tag tag-active"
	}
	sep := "?"
	if strings.Contains(href, "?") {
		sep = "&"
	}
	buf.WriteString(`<a class="` + class + `" href="` + esc(href) + `" hx-get="` + esc(href+sep+"partial=posts") +
		`" hx-target="#posts" hx-push-url="` + esc(href) + `">` + esc(label) + `</a>`)
}
