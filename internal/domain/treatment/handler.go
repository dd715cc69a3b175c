package treatment

import (
	"errors"
	"net/http"
	"strconv"

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

// RegisterRoutes mounts the treatment form and the three history pages.
// None of them checks the session.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/start_treatment/:appointment_id", h.TreatmentForm)
	g.POST("/start_treatment/:appointment_id", h.SaveTreatment)

	for _, origin := range []Origin{OriginHistory, OriginPastHistory, OriginPatientHistory} {
		g.GET("/"+string(origin)+"/:patient_id", h.History(origin))
	}
}

func appointmentParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("appointment_id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return id, nil
}

func (h *Handler) TreatmentForm(c echo.Context) error {
	id, err := appointmentParam(c)
	if err != nil {
		return err
	}
	f, err := h.svc.Form(c.Request().Context(), id)
	if errors.Is(err, apperr.ErrNotFound) {
		return view.Flash(c, view.FlashError, "Appointment not found!", "/doctor")
	}
	if err != nil {
		return err
	}
	return view.Render(c, "treatment", view.Data{
		"appointment": f.Appointment,
		"patient":     f.Patient,
		"treatment":   f.Treatment,
	})
}

func (h *Handler) SaveTreatment(c echo.Context) error {
	id, err := appointmentParam(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	_, err = h.svc.Record(ctx, session.FromContext(ctx), id, Notes{
		TestDone:     c.FormValue("test_done"),
		Diagnosis:    c.FormValue("diagnosis"),
		Prescription: c.FormValue("prescription"),
		Medicines:    c.FormValue("medicines"),
	})
	if errors.Is(err, apperr.ErrNotFound) {
		return view.Flash(c, view.FlashError, "Appointment not found!", "/doctor")
	}
	if err != nil {
		return err
	}
	return view.Flash(c, view.FlashSuccess, "Treatment saved successfully!", "/doctor")
}

// History renders the patient's treatment history inside the view named
// after origin.
func (h *Handler) History(origin Origin) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, entries, err := h.svc.History(c.Request().Context(), c.Param("patient_id"))
		if errors.Is(err, apperr.ErrNotFound) {
			return view.Flash(c, view.FlashError, "Patient not found!", "/doctor")
		}
		if err != nil {
			return err
		}
		if entries == nil {
			entries = []*HistoryEntry{}
		}
		return view.Render(c, string(origin), view.Data{
			"patient":    p,
			"treatments": entries,
		})
	}
}
