// Package views renders site pages as templ components. Components are
// plain Go: each builds its HTML into a buffer inside a
// templ.ComponentFunc, so no template codegen step is needed.
package views

// Site holds the site-wide values every page template reads.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the head.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
