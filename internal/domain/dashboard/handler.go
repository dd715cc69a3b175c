package dashboard

import (
	"errors"

	"github.com/labstack/echo/v4"

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

// RegisterRoutes mounts the three dashboards. The admin dashboard is not
// gated.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/admin", h.Admin)
	g.GET("/doctor", h.Doctor, session.RequireRole(session.RoleDoctor, "/login"))
	g.GET("/patient", h.Patient, session.RequireRole(session.RolePatient, "/login"))
}

func (h *Handler) Admin(c echo.Context) error {
	v, err := h.svc.Admin(c.Request().Context())
	if err != nil {
		return err
	}
	return view.Render(c, "admin", view.Data{
		"doctors":            v.Doctors,
		"patients":           v.Patients,
		"appointments":       v.Appointments,
		"total_doctors":      v.TotalDoctors,
		"total_patients":     v.TotalPatients,
		"total_appointments": v.TotalAppointments,
	})
}

func (h *Handler) Doctor(c echo.Context) error {
	ctx := c.Request().Context()
	v, err := h.svc.Doctor(ctx, session.FromContext(ctx))
	if errors.Is(err, apperr.ErrUnauthorizedRole) {
		return view.Redirect(c, "/login")
	}
	if err != nil {
		return err
	}
	return view.Render(c, "doctor", view.Data{
		"doctor_name":        v.DoctorName,
		"appointments":       v.Appointments,
		"completed_patients": v.CompletedPatients,
	})
}

func (h *Handler) Patient(c echo.Context) error {
	ctx := c.Request().Context()
	v, err := h.svc.Patient(ctx, session.FromContext(ctx))
	if errors.Is(err, apperr.ErrUnauthorizedRole) {
		return view.Redirect(c, "/login")
	}
	if err != nil {
		return err
	}
	return view.Render(c, "patient", view.Data{
		"patient_id":   v.PatientID,
		"patient_name": v.PatientName,
		"departments":  v.Departments,
	})
}
