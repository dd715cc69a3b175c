// Package view turns a view name and its data into a response document.
// Handlers call Render, Redirect or Flash; the concrete format is chosen
// by the echo.Renderer installed at startup.
package view

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medcare/frontdesk/internal/platform/session"
)

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Data is the named values a view is rendered with.
type Data map[string]any

// Page is what a renderer receives: the view name, its data and the
// notices queued for the visitor.
type Page struct {
	View    string          `json:"view"`
	Data    Data            `json:"data"`
	Flashes []session.Flash `json:"flashes"`
}

// Render draws view name with data and consumes the pending flashes.
func Render(c echo.Context, name string, data Data) error {
	if data == nil {
		data = Data{}
	}
	sess := session.FromContext(c.Request().Context())
	flashes := sess.PopFlashes()
	if flashes == nil {
		flashes = []session.Flash{}
	}
	return c.Render(http.StatusOK, name, Page{View: name, Data: data, Flashes: flashes})
}

// Redirect sends the visitor to path.
func Redirect(c echo.Context, path string) error {
	return c.Redirect(http.StatusFound, path)
}

// Flash queues a notice and redirects to path.
func Flash(c echo.Context, category, message, path string) error {
	session.FromContext(c.Request().Context()).AddFlash(category, message)
	return Redirect(c, path)
}
