// Package quill is a file-based blog engine built with Go, Echo, and templ.
// Content lives on disk as Markdown documents with a front-matter block;
// quill loads the collection, indexes it in SQLite, and renders pages,
// an RSS feed, and a sitemap.
//
// The content collection itself is renderer-agnostic and lives in the
// content package; this package is the consumer that turns it into a site.
package quill

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tailtq/quill/content"
	"github.com/tailtq/quill/internal/logger"
	"github.com/tailtq/quill/markdown"
	"github.com/tailtq/quill/views"
)

// App is the central quill application. It wires together the content
// loader, store, cache, renderer, handlers, and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *DocCache

	renderer     *markdown.Renderer
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new quill App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}
	a.renderer = &markdown.Renderer{AssetPrefix: cfg.AssetPrefix}

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start loads the content collection, initializes the index, middleware,
// and routes, and starts the server. A malformed content file fails
// startup with a diagnostic naming the file.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("quill: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("quill: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("quill: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewDocCache(store, a.Config.CacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	if err := a.Reload(); err != nil {
		return err
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Reload re-walks the content directory, rebuilds the SQLite index in one
// transaction, and invalidates the cache. Readers see either the old
// collection or the new one, never a partial mix.
func (a *App) Reload() error {
	coll, err := content.Load(a.Config.ContentDir)
	if err != nil {
		return fmt.Errorf("quill: load content: %w", err)
	}
	docs := make([]content.Document, 0, coll.Len())
	docs = append(docs, coll.Posts()...)
	docs = append(docs, coll.Pages()...)
	if err := a.Store.ReplaceAll(docs); err != nil {
		return fmt.Errorf("quill: rebuild index: %w", err)
	}
	a.Cache.Invalidate()
	logger.Info("content reloaded",
		"dir", a.Config.ContentDir,
		"posts", len(coll.Posts()),
		"pages", len(coll.Pages()))
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)

	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.POST("/admin/reload/", a.handleAdminReload)
	e.GET("/admin/preview/:slug/", a.handleAdminPreview)

	// Static pages claim the remaining top-level slugs.
	e.GET("/:page/", a.handlePage)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// site adapts the app config into the shape the view components take.
func (a *App) site() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
