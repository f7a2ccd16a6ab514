package quill

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tailtq/quill/content"
	"github.com/tailtq/quill/views"
)

func (a *App) handleHome(c echo.Context) error {
	tag := c.QueryParam("tag")
	posts, err := a.Cache.Posts(tag)
	if err != nil {
		return err
	}
	tags, err := a.Cache.Tags()
	if err != nil {
		return err
	}
	pages, err := a.Cache.Pages()
	if err != nil {
		return err
	}
	if c.Request().Header.Get("HX-Request") == "true" && c.QueryParam("partial") == "posts" {
		return Render(c, views.PostList(posts, tag, tags))
	}
	return Render(c, views.Home(a.site(), posts, pages, tag, tags))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	doc, err := a.Cache.Get(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		}
		return err
	}
	if doc.Kind != content.KindPost {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
	}
	posts, err := a.Cache.Posts("")
	if err != nil {
		return err
	}
	related := views.FilterRelated(doc, posts)
	return Render(c, views.Post(a.site(), doc, related, a.renderer))
}

func (a *App) handlePage(c echo.Context) error {
	slug := c.Param("page")
	doc, err := a.Cache.Get(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		}
		return err
	}
	if doc.Kind != content.KindPage {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
	}
	pages, err := a.Cache.Pages()
	if err != nil {
		return err
	}
	return Render(c, views.Page(a.site(), doc, pages, a.renderer))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.Posts("")
	if err != nil {
		return err
	}
	pages, err := a.Cache.Pages()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts, pages)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.Posts("")
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
