package views

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/tailtq/quill/content"
)

// layout wraps body in the full HTML document: head with SEO metadata,
// site header with page navigation, and footer.
func layout(site Site, meta PageMeta, nav []content.Document, jsonLD string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString("<!DOCTYPE html><html lang=\"en\"><head>")
		buf.WriteString(`<meta charset="utf-8"/><meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		buf.WriteString("<title>" + esc(meta.Title) + "</title>")
		if meta.Description != "" {
			buf.WriteString(`<meta name="description" content="` + esc(meta.Description) + `"/>`)
		}
		if meta.URL != "" {
			buf.WriteString(`<link rel="canonical" href="` + esc(meta.URL) + `"/>`)
			buf.WriteString(`<meta property="og:url" content="` + esc(meta.URL) + `"/>`)
		}
		buf.WriteString(`<meta property="og:title" content="` + esc(meta.Title) + `"/>`)
		if meta.Description != "" {
			buf.WriteString(`<meta property="og:description" content="` + esc(meta.Description) + `"/>`)
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}
		buf.WriteString(`<meta property="og:type" content="` + esc(ogType) + `"/>`)
		buf.WriteString(`<link rel="alternate" type="application/rss+xml" title="` + esc(site.Name) + `" href="/feed.xml"/>`)
		buf.WriteString(`<link rel="stylesheet" href="/public/site.css"/>`)
		if jsonLD != "" {
			buf.WriteString(`<script type="application/ld+json">` + jsonLD + `</script>`)
		}
		buf.WriteString("</head><body>")

		buf.WriteString(`<header class="site-header"><a class="site-title" href="/">` + esc(site.Name) + `</a><nav>`)
		for _, p := range nav {
			buf.WriteString(`<a href="` + esc(p.Link()) + `">` + esc(p.Title) + `</a>`)
		}
		buf.WriteString(`</nav></header><main>`)

		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		footer := `</main><footer class="site-footer"><p>` + esc(site.Name) + ` · <a href="/feed.xml">RSS</a></p></footer></body></html>`
		_, err := io.WriteString(w, footer)
		return err
	})
}
