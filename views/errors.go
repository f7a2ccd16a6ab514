package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// NotFound renders the 404 page.
func NotFound(site Site) templ.Component {
	return errorPage(site, "Page not found", "The page you are looking for does not exist. It may have been moved or removed.")
}

// ServerError renders the 500 page.
func ServerError(site Site) templ.Component {
	return errorPage(site, "Something went wrong", "An unexpected error occurred. Please try again later.")
}

func errorPage(site Site, title, detail string) templ.Component {
	meta := PageMeta{Title: title + " · " + site.Name}
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		html := `<section class="error-page"><h1>` + esc(title) + `</h1><p>` + esc(detail) + `</p><p><a href="/">Back to home</a></p></section>`
		_, err := io.WriteString(w, html)
		return err
	})
	return layout(site, meta, nil, "", body)
}
