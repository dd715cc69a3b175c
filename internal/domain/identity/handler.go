package identity

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medcare/frontdesk/internal/platform/apperr"
	"github.com/medcare/frontdesk/internal/platform/session"
	"github.com/medcare/frontdesk/internal/platform/view"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the landing, login, registration and static
// information pages.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/", page("index"))
	g.GET("/availability", page("availability"))
	g.GET("/doc_availability", page("doctor_availability"))

	g.GET("/login", page("login"))
	g.POST("/login", h.Login)
	g.GET("/register", page("register"))
	g.POST("/register", h.Register)
	g.POST("/logout", h.Logout)
}

// page renders a view that needs no data.
func page(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return view.Render(c, name, nil)
	}
}

func (h *Handler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := h.svc.Login(ctx, session.FromContext(ctx), c.FormValue("username"), c.FormValue("password"))
	if errors.Is(err, apperr.ErrInvalidCredentials) {
		return view.Flash(c, view.FlashError, "Incorrect username or password!", "/login")
	}
	if err != nil {
		return err
	}
	return view.Redirect(c, HomeFor(id))
}

func (h *Handler) Register(c echo.Context) error {
	username := c.FormValue("username")
	if strings.TrimSpace(username) == "" {
		return view.Flash(c, view.FlashError, "Username is required.", "/register")
	}

	_, err := h.svc.Register(c.Request().Context(), username, c.FormValue("password"))
	switch {
	case errors.Is(err, apperr.ErrDuplicateUsername):
		return view.Flash(c, view.FlashError, "Username already exists. Please choose another.", "/register")
	case errors.Is(err, apperr.ErrInvalidInput):
		return view.Flash(c, view.FlashError, "Password must be 1 to 8 characters.", "/register")
	case err != nil:
		zerolog.Ctx(c.Request().Context()).Error().Err(err).Msg("register patient")
		return view.Flash(c, view.FlashError, "An error occurred. Please try again.", "/register")
	}
	return view.Flash(c, view.FlashSuccess, "Account created successfully!", "/login")
}

func (h *Handler) Logout(c echo.Context) error {
	h.svc.Logout(session.FromContext(c.Request().Context()))
	return view.Redirect(c, "/")
}
