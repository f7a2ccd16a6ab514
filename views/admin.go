package views

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/tailtq/quill/content"
)

// AdminLogin renders the password form, with an error banner after a
// failed attempt.
func AdminLogin(site Site, showError bool, csrfToken string) templ.Component {
	meta := PageMeta{Title: "Admin · " + site.Name}
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<section class="admin-login"><h1>Admin</h1>`)
		if showError {
			buf.WriteString(`<p class="error">Wrong password.</p>`)
		}
		buf.WriteString(`<form method="post" action="/admin/login/">`)
		buf.WriteString(`<input type="hidden" name="_csrf" value="` + esc(csrfToken) + `"/>`)
		buf.WriteString(`<input type="password" name="password" autofocus required/>`)
		buf.WriteString(`<button type="submit">Log in</button>`)
		buf.WriteString(`</form></section>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
	return layout(site, meta, nil, "", body)
}

// AdminDashboard lists every document, drafts included, with preview
// links and the reload action.
func AdminDashboard(site Site, docs []content.Document, msg string, csrfToken string) templ.Component {
	meta := PageMeta{Title: "Dashboard · " + site.Name}
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<section class="admin-dashboard"><h1>Dashboard</h1>`)
		if msg != "" {
			buf.WriteString(`<p class="message">` + esc(msg) + `</p>`)
		}

		buf.WriteString(`<form method="post" action="/admin/reload/">`)
		buf.WriteString(`<input type="hidden" name="_csrf" value="` + esc(csrfToken) + `"/>`)
		buf.WriteString(`<button type="submit">Reload content</button>`)
		buf.WriteString(`</form>`)

		buf.WriteString(`<table><thead><tr><th>Title</th><th>Kind</th><th>Date</th><th>Status</th><th>Source</th></tr></thead><tbody>`)
		for _, d := range docs {
			status := "published"
			if d.Draft {
				status = "draft"
			}
			buf.WriteString(`<tr>`)
			buf.WriteString(`<td><a href="/admin/preview/` + esc(d.Slug) + `/">` + esc(d.Title) + `</a></td>`)
			buf.WriteString(`<td>` + esc(string(d.Kind)) + `</td>`)
			buf.WriteString(`<td>` + FormatDate(d.Date) + `</td>`)
			buf.WriteString(`<td>` + status + `</td>`)
			buf.WriteString(`<td><code>` + esc(d.SourcePath) + `</code></td>`)
			buf.WriteString(`</tr>`)
		}
		buf.WriteString(`</tbody></table>`)

		buf.WriteString(`<form method="post" action="/admin/logout/">`)
		buf.WriteString(`<input type="hidden" name="_csrf" value="` + esc(csrfToken) + `"/>`)
		buf.WriteString(`<button type="submit">Log out</button>`)
		buf.WriteString(`</form></section>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
	return layout(site, meta, nil, "", body)
}
