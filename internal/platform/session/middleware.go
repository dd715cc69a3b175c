package session

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Middleware loads the visitor's session into the request context and
// writes it back just before the response headers go out, if it changed.
func Middleware(store *CookieStore, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			sess := store.Load(req)
			c.SetRequest(req.WithContext(NewContext(req.Context(), sess)))

			c.Response().Before(func() {
				if !sess.Dirty() {
					return
				}
				if err := store.Save(c.Response(), sess); err != nil {
					rid, _ := c.Get("request_id").(string)
					logger.Error().Err(err).Str("request_id", rid).Msg("failed to save session")
				}
			})

			return next(c)
		}
	}
}

// RequireRole sends visitors whose session does not hold role to loginPath.
func RequireRole(role Role, loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if FromContext(c.Request().Context()).Role() != role {
				return c.Redirect(http.StatusFound, loginPath)
			}
			return next(c)
		}
	}
}
