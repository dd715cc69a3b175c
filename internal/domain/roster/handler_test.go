package roster

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/medcare/frontdesk/internal/platform/session"
	"github.com/medcare/frontdesk/internal/platform/view"
)

func newTestHandler() (*Handler, *echo.Echo, *testEnv) {
	env := newTestEnv()
	e := echo.New()
	e.Renderer = view.JSONRenderer{}
	return NewHandler(env.svc), e, env
}

func newRequest(e *echo.Echo, method string, form url.Values) (echo.Context, *httptest.ResponseRecorder, *session.Session) {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, "/", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, "/", nil)
	}
	sess := session.New()
	req = req.WithContext(session.NewContext(req.Context(), sess))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec, sess
}

func assertFlashRedirect(t *testing.T, rec *httptest.ResponseRecorder, sess *session.Session, location, message string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Errorf("expected redirect to %s, got %s", location, got)
	}
	flashes := sess.PopFlashes()
	if len(flashes) != 1 || flashes[0].Message != message {
		t.Errorf("expected flash %q, got %v", message, flashes)
	}
}

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var page struct {
		View string                     `json:"view"`
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	return page.Data
}

func TestHandler_ViewDoctors(t *testing.T) {
	h, e, env := newTestHandler()
	env.doctors.doctors["D001"] = &Doctor{ID: "D001", Name: "Dr. Ashok K. Patel", DepartmentID: 1001}

	c, rec, _ := newRequest(e, http.MethodGet, nil)
	c.SetParamNames("department_id")
	c.SetParamValues("1001")

	if err := h.ViewDoctors(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data := decodePage(t, rec)
	var doctors []Doctor
	json.Unmarshal(data["doctors"], &doctors)
	if len(doctors) != 1 || doctors[0].Name != "Dr. Ashok K. Patel" {
		t.Errorf("unexpected doctors: %s", data["doctors"])
	}
}

func TestHandler_ViewDoctors_NonNumericIs404(t *testing.T) {
	h, e, _ := newTestHandler()
	c, _, _ := newRequest(e, http.MethodGet, nil)
	c.SetParamNames("department_id")
	c.SetParamValues("eyes")

	err := h.ViewDoctors(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandler_ViewPatient_NotFound(t *testing.T) {
	h, e, _ := newTestHandler()
	c, rec, sess := newRequest(e, http.MethodGet, nil)
	c.SetParamNames("id")
	c.SetParamValues("P404")

	if err := h.ViewPatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertFlashRedirect(t, rec, sess, "/admin", "Patient not found!")
}

func TestHandler_ViewPatient_HidesPassword(t *testing.T) {
	h, e, env := newTestHandler()
	env.patients.patients["P001"] = &Patient{ID: "P001", Name: "alice", Password: "pw123456"}
	c, rec, _ := newRequest(e, http.MethodGet, nil)
	c.SetParamNames("id")
	c.SetParamValues("P001")

	if err := h.ViewPatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(rec.Body.String(), "pw123456") {
		t.Error("password must not appear in the JSON view")
	}
}

func TestHandler_AddDoctor(t *testing.T) {
	h, e, env := newTestHandler()
	form := url.Values{"doctor_name": {"Dr. New"}, "department_id": {"1001"}, "specialization": {"Retina"}}
	c, rec, sess := newRequest(e, http.MethodPost, form)

	if err := h.AddDoctor(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertFlashRedirect(t, rec, sess, "/admin", "Doctor added successfully!")
	if _, ok := env.doctors.doctors["D001"]; !ok {
		t.Error("expected D001 to be created")
	}
}

func TestHandler_AddDoctor_UnknownDepartment(t *testing.T) {
	h, e, env := newTestHandler()
	form := url.Values{"doctor_name": {"Dr. New"}, "department_id": {"9999"}}
	c, rec, sess := newRequest(e, http.MethodPost, form)

	if err := h.AddDoctor(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertFlashRedirect(t, rec, sess, "/add_doctor", "Department not found!")
	if len(env.doctors.doctors) != 0 {
		t.Error("expected no doctor written")
	}
}

func TestHandler_EditDoctor(t *testing.T) {
	h, e, env := newTestHandler()
	env.doctors.doctors["D001"] = &Doctor{ID: "D001", Name: "Dr. A", DepartmentID: 1001}

	form := url.Values{"doctor_name": {"Dr. A2"}, "department_id": {"1002"}, "specialization": {"ENT Surgery"}}
	c, rec, sess := newRequest(e, http.MethodPost, form)
	c.SetParamNames("id")
	c.SetParamValues("D001")

	if err := h.EditDoctor(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertFlashRedirect(t, rec, sess, "/admin", "Doctor updated successfully!")
	if env.doctors.doctors["D001"].Name != "Dr. A2" {
		t.Error("expected doctor to be renamed")
	}
}

func TestHandler_EditDoctorForm_NotFound(t *testing.T) {
	h, e, _ := newTestHandler()
	c, rec, sess := newRequest(e, http.MethodGet, nil)
	c.SetParamNames("id")
	c.SetParamValues("D404")

	if err := h.EditDoctorForm(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertFlashRedirect(t, rec, sess, "/admin", "Doctor not found!")
}

func TestHandler_DeleteDoctor(t *testing.T) {
	h, e, env := newTestHandler()
	env.doctors.doctors["D001"] = &Doctor{ID: "D001", Name: "Dr. A", DepartmentID: 1001}

	c, rec, sess := newRequest(e, http.MethodPost, nil)
	c.SetParamNames("id")
	c.SetParamValues("D001")
	if err := h.DeleteDoctor(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertFlashRedirect(t, rec, sess, "/admin", "Doctor deleted successfully!")

	c, rec, sess = newRequest(e, http.MethodPost, nil)
	c.SetParamNames("id")
	c.SetParamValues("D001")
	if err := h.DeleteDoctor(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertFlashRedirect(t, rec, sess, "/admin", "Doctor not found!")
}

func TestHandler_EditPatient(t *testing.T) {
	h, e, env := newTestHandler()
	env.patients.patients["P001"] = &Patient{ID: "P001", Name: "alice", Password: "old"}

	form := url.Values{"patient_name": {"alice"}, "password": {"new"}}
	c, rec, sess := newRequest(e, http.MethodPost, form)
	c.SetParamNames("id")
	c.SetParamValues("P001")

	if err := h.EditPatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertFlashRedirect(t, rec, sess, "/admin", "Patient updated successfully!")
	if env.patients.patients["P001"].Password != "new" {
		t.Error("expected password to change")
	}
}

func TestHandler_DeletePatient_NotFound(t *testing.T) {
	h, e, _ := newTestHandler()
	c, rec, sess := newRequest(e, http.MethodPost, nil)
	c.SetParamNames("id")
	c.SetParamValues("P404")

	if err := h.DeletePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertFlashRedirect(t, rec, sess, "/admin", "Patient not found!")
}

func TestHandler_EditProfile(t *testing.T) {
	h, e, env := newTestHandler()
	env.patients.patients["P001"] = &Patient{ID: "P001", Name: "alice", Password: "old"}

	form := url.Values{
		"patient_name": {"alice"},
		"email":        {"alice@example.com"},
		"contact_no":   {"9876543210"},
		"password":     {"pw"},
	}
	c, rec, sess := newRequest(e, http.MethodPost, form)
	c.SetParamNames("patient_id")
	c.SetParamValues("P001")

	if err := h.EditProfile(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertFlashRedirect(t, rec, sess, "/patient", "Profile updated successfully!")
}

func TestHandler_EditProfileForm_NotFound(t *testing.T) {
	h, e, _ := newTestHandler()
	c, rec, sess := newRequest(e, http.MethodGet, nil)
	c.SetParamNames("patient_id")
	c.SetParamValues("P404")

	if err := h.EditProfileForm(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertFlashRedirect(t, rec, sess, "/patient", "Patient not found!")
}

func TestHandler_AddDoctorForm_ListsDepartments(t *testing.T) {
	h, e, _ := newTestHandler()
	c, rec, _ := newRequest(e, http.MethodGet, nil)

	if err := h.AddDoctorForm(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var depts []Department
	json.Unmarshal(decodePage(t, rec)["departments"], &depts)
	if len(depts) != 2 {
		t.Errorf("expected 2 departments, got %d", len(depts))
	}
}
