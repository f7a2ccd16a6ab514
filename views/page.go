package views

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/tailtq/quill/content"
	"github.com/tailtq/quill/markdown"
)

// Page renders a static page (about, projects, ...) with the page nav.
func Page(site Site, doc content.Document, pages []content.Document, r *markdown.Renderer) templ.Component {
	meta := PageMeta{
		Title:       doc.Title + " · " + site.Name,
		Description: site.Description,
		URL:         buildURL(site.URL, doc.Slug),
		OGType:      "website",
	}
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<article class="page">`)
		buf.WriteString(`<h1>` + esc(doc.Title) + `</h1>`)
		buf.WriteString(`<div class="page-body">`)
		r.Render(&buf, doc.Body)
		buf.WriteString(`</div></article>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
	return layout(site, meta, pages, WebsiteJsonLD(site), body)
}
