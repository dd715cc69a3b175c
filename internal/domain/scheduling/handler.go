package scheduling

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/medcare/frontdesk/internal/domain/roster"
	"github.com/medcare/frontdesk/internal/platform/apperr"
	"github.com/medcare/frontdesk/internal/platform/session"
	"github.com/medcare/frontdesk/internal/platform/view"
)

// DoctorDirectory supplies the doctors offered on the booking page.
type DoctorDirectory interface {
	ListDoctors(ctx context.Context) ([]*roster.Doctor, error)
}

type Handler struct {
	svc     *Service
	doctors DoctorDirectory
}

func NewHandler(svc *Service, doctors DoctorDirectory) *Handler {
	return &Handler{svc: svc, doctors: doctors}
}

// RegisterRoutes mounts the appointment endpoints. Booking and the
// patient's list need a patient session and completion a doctor session;
// the two cancel endpoints are open.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	patientOnly := session.RequireRole(session.RolePatient, "/login")
	doctorOnly := session.RequireRole(session.RoleDoctor, "/login")

	g.GET("/book_appointment", h.BookForm, patientOnly)
	g.POST("/book_appointment", h.Book, patientOnly)
	g.GET("/view_appointment", h.ViewAppointments, patientOnly)
	g.POST("/cancel_appointment/:id", h.Cancel)
	g.POST("/complete_appointment/:id", h.Complete, doctorOnly)
	g.POST("/doctor_cancel/:id", h.DoctorCancel)
}

func appointmentID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return id, nil
}

func (h *Handler) bookingPage(c echo.Context, booked *Appointment) error {
	doctors, err := h.doctors.ListDoctors(c.Request().Context())
	if err != nil {
		return err
	}
	data := view.Data{"doctors": doctors, "today": h.svc.Today()}
	if booked != nil {
		data["appointment"] = booked
	}
	return view.Render(c, "book_appointment", data)
}

func (h *Handler) BookForm(c echo.Context) error {
	return h.bookingPage(c, nil)
}

func (h *Handler) Book(c echo.Context) error {
	ctx := c.Request().Context()
	a, err := h.svc.Book(ctx, session.FromContext(ctx),
		c.FormValue("doctor_name"), c.FormValue("date"), c.FormValue("time"))
	switch {
	case errors.Is(err, apperr.ErrUnauthorizedRole):
		return view.Redirect(c, "/login")
	case errors.Is(err, apperr.ErrInvalidInput):
		return view.Flash(c, view.FlashError, "Please enter a valid date.", "/book_appointment")
	case err != nil:
		return err
	}
	return h.bookingPage(c, a)
}

func (h *Handler) ViewAppointments(c echo.Context) error {
	ctx := c.Request().Context()
	patient, ok := session.FromContext(ctx).Patient()
	if !ok {
		return view.Redirect(c, "/login")
	}
	appointments, err := h.svc.ListForPatient(ctx, patient.ID)
	if err != nil {
		return err
	}
	return view.Render(c, "view_appointment", view.Data{"appointments": appointments})
}

func (h *Handler) Cancel(c echo.Context) error {
	id, err := appointmentID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	_, err = h.svc.Cancel(ctx, session.FromContext(ctx), id)
	if errors.Is(err, apperr.ErrNotFound) {
		return view.Flash(c, view.FlashError, "Appointment not found!", "/view_appointment")
	}
	if err != nil {
		return err
	}
	return view.Redirect(c, "/view_appointment")
}

func (h *Handler) Complete(c echo.Context) error {
	id, err := appointmentID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	_, err = h.svc.Complete(ctx, session.FromContext(ctx), id)
	switch {
	case errors.Is(err, apperr.ErrUnauthorizedRole):
		return view.Redirect(c, "/login")
	case errors.Is(err, apperr.ErrNotFound):
		return view.Flash(c, view.FlashError, "Appointment not found!", "/doctor")
	case err != nil:
		return err
	}
	return view.Flash(c, view.FlashSuccess, "Appointment marked as completed!", "/doctor")
}

func (h *Handler) DoctorCancel(c echo.Context) error {
	id, err := appointmentID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	_, err = h.svc.CancelByDoctor(ctx, session.FromContext(ctx), id)
	if errors.Is(err, apperr.ErrNotFound) {
		return view.Flash(c, view.FlashError, "Appointment not found!", "/doctor")
	}
	if err != nil {
		return err
	}
	return view.Redirect(c, "/doctor")
}
