package views

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/tailtq/quill/content"
	"github.com/tailtq/quill/markdown"
)

// Post renders a single blog post with its related-posts footer.
func Post(site Site, doc content.Document, related []content.Document, r *markdown.Renderer) templ.Component {
	meta := PageMeta{
		Title:       doc.Title + " · " + site.Name,
		Description: firstNonEmpty(site.Description, doc.Title),
		URL:         buildURL(site.URL, "blog", doc.Slug),
		OGType:      "article",
	}
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<article class="post">`)
		buf.WriteString(`<header>`)
		if doc.Icon != "" {
			buf.WriteString(`<img class="post-icon" alt="" src="` + esc(doc.Icon) + `"/>`)
		}
		buf.WriteString(`<h1>` + esc(doc.Title) + `</h1>`)
		if d := FormatDate(doc.Date); d != "" {
			buf.WriteString(`<time datetime="` + doc.Date.Format(content.DateFormat) + `">` + d + `</time>`)
		}
		if doc.Author != "" {
			buf.WriteString(`<span class="author">` + esc(doc.Author) + `</span>`)
		}
		if len(doc.Tags) > 0 {
			buf.WriteString(`<ul class="tags">`)
			for _, t := range doc.Tags {
				buf.WriteString(`<li>` + esc(t) + `</li>`)
			}
			buf.WriteString(`</ul>`)
		}
		buf.WriteString(`</header><div class="post-body">`)
		r.Render(&buf, doc.Body)
		buf.WriteString(`</div>`)

		if len(related) > 0 {
			buf.WriteString(`<aside class="related"><h2>Related posts</h2><ul>`)
			for _, p := range related {
				buf.WriteString(`<li><a href="` + esc(p.Link()) + `">` + esc(p.Title) + `</a></li>`)
			}
			buf.WriteString(`</ul></aside>`)
		}
		buf.WriteString(`</article>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
	return layout(site, meta, nil, BlogPostingJsonLD(site, doc), body)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
