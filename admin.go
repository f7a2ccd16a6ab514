package quill

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tailtq/quill/content"
	"github.com/tailtq/quill/views"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, views.AdminLogin(a.site(), false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	return Render(c, views.AdminLogin(a.site(), true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// handleAdminReload re-walks the content directory. The "fix the file and
// rebuild" loop lives here: a malformed document keeps the old index and
// the diagnostic (naming the offending file) lands in the dashboard.
func (a *App) handleAdminReload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := a.Reload(); err != nil {
		return a.renderAdminDashboard(c, err.Error())
	}
	return a.renderAdminDashboard(c, "content reloaded")
}

// handleAdminPreview renders a document regardless of draft status.
func (a *App) handleAdminPreview(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	doc, err := a.Store.GetDocumentAny(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	if doc.Kind == content.KindPage {
		return Render(c, views.Page(a.site(), doc, nil, a.renderer))
	}
	return Render(c, views.Post(a.site(), doc, nil, a.renderer))
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	docs, err := a.Store.ListAll()
	if err != nil {
		return err
	}
	return Render(c, views.AdminDashboard(a.site(), docs, msg, CsrfToken(c)))
}
