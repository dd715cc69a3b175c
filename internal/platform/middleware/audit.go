package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medcare/frontdesk/internal/platform/session"
)

// auditEntry records who changed what through the front desk.
type auditEntry struct {
	ActorRole  session.Role
	ActorID    string
	Action     string
	Method     string
	Path       string
	Route      string
	IPAddress  string
	UserAgent  string
	RequestID  string
	StatusCode int
}

// Audit logs every state-changing request together with the actor held by
// the session at the time the request arrived. It must run after the
// session middleware. Reads are not audited.
func Audit(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if !isStateChanging(req.Method) {
				return next(c)
			}

			// Capture the actor before the handler runs; login and logout
			// replace the identity.
			role, actorID := actorOf(session.FromContext(req.Context()))

			err := next(c)

			entry := auditEntry{
				ActorRole:  role,
				ActorID:    actorID,
				Action:     routeAction(c.Path()),
				Method:     req.Method,
				Path:       req.URL.Path,
				Route:      c.Path(),
				IPAddress:  c.RealIP(),
				UserAgent:  req.UserAgent(),
				StatusCode: statusOf(c, err),
			}
			if rid, ok := c.Get("request_id").(string); ok {
				entry.RequestID = rid
			}

			logger.Info().
				Str("type", "audit").
				Str("request_id", entry.RequestID).
				Str("actor_role", string(entry.ActorRole)).
				Str("actor_id", entry.ActorID).
				Str("action", entry.Action).
				Str("method", entry.Method).
				Str("path", entry.Path).
				Str("route", entry.Route).
				Str("user_agent", entry.UserAgent).
				Str("remote_ip", entry.IPAddress).
				Int("status", entry.StatusCode).
				Msg("state_change")

			return err
		}
	}
}

// statusOf is the status the visitor will see. A returned error has not
// been written yet; echo's error handler answers it after the middleware
// chain unwinds.
func statusOf(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

func isStateChanging(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func actorOf(s *session.Session) (session.Role, string) {
	switch id := s.Identity().(type) {
	case session.Admin:
		return session.RoleAdmin, "admin"
	case session.Patient:
		return session.RolePatient, id.ID
	case session.Doctor:
		return session.RoleDoctor, id.ID
	}
	return session.RoleNone, ""
}

// routeAction names the operation behind a registered route, e.g.
// "/cancel_appointment/:id" becomes "cancel_appointment".
func routeAction(route string) string {
	if route == "" || route == "/" {
		return "index"
	}
	start := 1
	end := len(route)
	for i := start; i < len(route); i++ {
		if route[i] == '/' {
			end = i
			break
		}
	}
	return route[start:end]
}
