package roster

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/medcare/frontdesk/internal/platform/apperr"
	"github.com/medcare/frontdesk/internal/platform/view"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the roster pages. None of them checks the
// session: the administrator pages are reachable by anyone who knows the
// URL.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/view_doctors/:department_id", h.ViewDoctors)
	g.GET("/view_patient/:id", h.ViewPatient)

	g.GET("/add_doctor", h.AddDoctorForm)
	g.POST("/add_doctor", h.AddDoctor)
	g.GET("/edit_doctor/:id", h.EditDoctorForm)
	g.POST("/edit_doctor/:id", h.EditDoctor)
	g.POST("/delete_doctor/:id", h.DeleteDoctor)

	g.GET("/edit_patient/:id", h.EditPatientForm)
	g.POST("/edit_patient/:id", h.EditPatient)
	g.POST("/delete_patient/:id", h.DeletePatient)

	g.GET("/edit_profile/:patient_id", h.EditProfileForm)
	g.POST("/edit_profile/:patient_id", h.EditProfile)
}

func intParam(c echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return v, nil
}

func (h *Handler) ViewDoctors(c echo.Context) error {
	deptID, err := intParam(c, "department_id")
	if err != nil {
		return err
	}
	dept, doctors, err := h.svc.DoctorsInDepartment(c.Request().Context(), deptID)
	if err != nil {
		return err
	}
	return view.Render(c, "doctor_list", view.Data{
		"department": dept,
		"doctors":    doctors,
	})
}

func (h *Handler) ViewPatient(c echo.Context) error {
	p, err := h.svc.GetPatient(c.Request().Context(), c.Param("id"))
	if errors.Is(err, apperr.ErrNotFound) {
		return view.Flash(c, view.FlashError, "Patient not found!", "/admin")
	}
	if err != nil {
		return err
	}
	return view.Render(c, "view_patient", view.Data{"patient": p})
}

// -- Doctors --

func (h *Handler) AddDoctorForm(c echo.Context) error {
	depts, err := h.svc.ListDepartments(c.Request().Context())
	if err != nil {
		return err
	}
	return view.Render(c, "add_doctor", view.Data{"departments": depts})
}

func (h *Handler) AddDoctor(c echo.Context) error {
	deptID, err := strconv.Atoi(c.FormValue("department_id"))
	if err != nil {
		return view.Flash(c, view.FlashError, "Please choose a department.", "/add_doctor")
	}
	_, err = h.svc.AddDoctor(c.Request().Context(),
		c.FormValue("doctor_name"), deptID, c.FormValue("specialization"))
	switch {
	case errors.Is(err, ErrUnknownDepartment):
		return view.Flash(c, view.FlashError, "Department not found!", "/add_doctor")
	case errors.Is(err, apperr.ErrInvalidInput):
		return view.Flash(c, view.FlashError, "Doctor name is required.", "/add_doctor")
	case err != nil:
		return err
	}
	return view.Flash(c, view.FlashSuccess, "Doctor added successfully!", "/admin")
}

func (h *Handler) EditDoctorForm(c echo.Context) error {
	ctx := c.Request().Context()
	d, err := h.svc.GetDoctor(ctx, c.Param("id"))
	if errors.Is(err, apperr.ErrNotFound) {
		return view.Flash(c, view.FlashError, "Doctor not found!", "/admin")
	}
	if err != nil {
		return err
	}
	depts, err := h.svc.ListDepartments(ctx)
	if err != nil {
		return err
	}
	return view.Render(c, "edit_doctor", view.Data{"doctor": d, "departments": depts})
}

func (h *Handler) EditDoctor(c echo.Context) error {
	id := c.Param("id")
	deptID, err := strconv.Atoi(c.FormValue("department_id"))
	if err != nil {
		return view.Flash(c, view.FlashError, "Please choose a department.", "/edit_doctor/"+id)
	}
	_, err = h.svc.EditDoctor(c.Request().Context(), id,
		c.FormValue("doctor_name"), c.FormValue("specialization"), deptID)
	switch {
	case errors.Is(err, ErrUnknownDepartment):
		return view.Flash(c, view.FlashError, "Department not found!", "/edit_doctor/"+id)
	case errors.Is(err, apperr.ErrNotFound):
		return view.Flash(c, view.FlashError, "Doctor not found!", "/admin")
	case err != nil:
		return err
	}
	return view.Flash(c, view.FlashSuccess, "Doctor updated successfully!", "/admin")
}

func (h *Handler) DeleteDoctor(c echo.Context) error {
	err := h.svc.DeleteDoctor(c.Request().Context(), c.Param("id"))
	if errors.Is(err, apperr.ErrNotFound) {
		return view.Flash(c, view.FlashError, "Doctor not found!", "/admin")
	}
	if err != nil {
		return err
	}
	return view.Flash(c, view.FlashSuccess, "Doctor deleted successfully!", "/admin")
}

// -- Patients --

func (h *Handler) EditPatientForm(c echo.Context) error {
	p, err := h.svc.GetPatient(c.Request().Context(), c.Param("id"))
	if errors.Is(err, apperr.ErrNotFound) {
		return view.Flash(c, view.FlashError, "Patient not found!", "/admin")
	}
	if err != nil {
		return err
	}
	return view.Render(c, "edit_patient", view.Data{"patient": p})
}

func (h *Handler) EditPatient(c echo.Context) error {
	id := c.Param("id")
	_, err := h.svc.EditPatient(c.Request().Context(), id,
		c.FormValue("patient_name"), c.FormValue("password"))
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return view.Flash(c, view.FlashError, "Patient not found!", "/admin")
	case errors.Is(err, apperr.ErrInvalidInput):
		return view.Flash(c, view.FlashError, "Password must be 1 to 8 characters.", "/edit_patient/"+id)
	case err != nil:
		return err
	}
	return view.Flash(c, view.FlashSuccess, "Patient updated successfully!", "/admin")
}

func (h *Handler) DeletePatient(c echo.Context) error {
	err := h.svc.DeletePatient(c.Request().Context(), c.Param("id"))
	if errors.Is(err, apperr.ErrNotFound) {
		return view.Flash(c, view.FlashError, "Patient not found!", "/admin")
	}
	if err != nil {
		return err
	}
	return view.Flash(c, view.FlashSuccess, "Patient deleted successfully!", "/admin")
}

func (h *Handler) EditProfileForm(c echo.Context) error {
	p, err := h.svc.GetPatient(c.Request().Context(), c.Param("patient_id"))
	if errors.Is(err, apperr.ErrNotFound) {
		return view.Flash(c, view.FlashError, "Patient not found!", "/patient")
	}
	if err != nil {
		return err
	}
	return view.Render(c, "edit_profile", view.Data{"patient": p})
}

func (h *Handler) EditProfile(c echo.Context) error {
	id := c.Param("patient_id")
	_, err := h.svc.EditProfile(c.Request().Context(), id, ProfileUpdate{
		Name:      c.FormValue("patient_name"),
		Email:     c.FormValue("email"),
		ContactNo: c.FormValue("contact_no"),
		Password:  c.FormValue("password"),
	})
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return view.Flash(c, view.FlashError, "Patient not found!", "/patient")
	case errors.Is(err, apperr.ErrInvalidInput):
		return view.Flash(c, view.FlashError, "Password must be 1 to 8 characters.", "/edit_profile/"+id)
	case err != nil:
		return err
	}
	return view.Flash(c, view.FlashSuccess, "Profile updated successfully!", "/patient")
}
