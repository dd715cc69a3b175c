package scheduling

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/medcare/frontdesk/internal/domain/roster"
	"github.com/medcare/frontdesk/internal/platform/session"
	"github.com/medcare/frontdesk/internal/platform/view"
)

type stubDirectory []*roster.Doctor

func (d stubDirectory) ListDoctors(context.Context) ([]*roster.Doctor, error) {
	return d, nil
}

func newTestHandler() (*Handler, *echo.Echo, *testEnv) {
	env := newTestEnv()
	e := echo.New()
	e.Renderer = view.JSONRenderer{}
	doctors := stubDirectory{{ID: "D001", Name: "Dr. Ashok K. Patel", DepartmentID: 1001}}
	return NewHandler(env.svc, doctors), e, env
}

func newRequest(e *echo.Echo, method string, form url.Values, sess *session.Session) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, "/", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, "/", nil)
	}
	req = req.WithContext(session.NewContext(req.Context(), sess))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
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

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) (string, map[string]json.RawMessage) {
	t.Helper()
	var page struct {
		View string                     `json:"view"`
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	return page.View, page.Data
}

func TestHandler_BookForm(t *testing.T) {
	h, e, _ := newTestHandler()
	c, rec := newRequest(e, http.MethodGet, nil, patientSession("P001", "alice"))

	if err := h.BookForm(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	name, data := decodePage(t, rec)
	if name != "book_appointment" {
		t.Errorf("expected book_appointment view, got %s", name)
	}
	if string(data["today"]) != `"2025-01-08"` {
		t.Errorf("unexpected today: %s", data["today"])
	}
	if !strings.Contains(string(data["doctors"]), "Dr. Ashok K. Patel") {
		t.Errorf("expected doctors listed, got %s", data["doctors"])
	}
}

func TestHandler_Book_RendersPageWithAppointment(t *testing.T) {
	h, e, env := newTestHandler()
	form := url.Values{"doctor_name": {"Dr. Ashok K. Patel"}, "date": {"2025-01-10"}, "time": {"10:00"}}
	c, rec := newRequest(e, http.MethodPost, form, patientSession("P001", "alice"))

	if err := h.Book(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	_, data := decodePage(t, rec)
	var booked Appointment
	if err := json.Unmarshal(data["appointment"], &booked); err != nil {
		t.Fatalf("decode appointment: %v (%s)", err, data["appointment"])
	}
	if booked.ID != 101 || booked.Status != StatusBooked {
		t.Errorf("unexpected appointment: %+v", booked)
	}
	if len(env.repo.appointments) != 1 {
		t.Errorf("expected 1 stored appointment, got %d", len(env.repo.appointments))
	}
}

func TestHandler_Book_BadDate(t *testing.T) {
	h, e, env := newTestHandler()
	sess := patientSession("P001", "alice")
	form := url.Values{"doctor_name": {"Dr. Ashok K. Patel"}, "date": {"tomorrow"}, "time": {"10:00"}}
	c, rec := newRequest(e, http.MethodPost, form, sess)

	if err := h.Book(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertFlashRedirect(t, rec, sess, "/book_appointment", "Please enter a valid date.")
	if len(env.repo.appointments) != 0 {
		t.Error("expected nothing stored")
	}
}

func TestHandler_Book_AnonymousGoesToLogin(t *testing.T) {
	h, e, _ := newTestHandler()
	form := url.Values{"doctor_name": {"Dr. Ashok K. Patel"}, "date": {"2025-01-10"}, "time": {"10:00"}}
	c, rec := newRequest(e, http.MethodPost, form, session.New())

	if err := h.Book(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Errorf("expected redirect to /login, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
}

func TestHandler_ViewAppointments_OnlyOwn(t *testing.T) {
	h, e, env := newTestHandler()
	seedAppointment(env, 101, "P001", "Dr. Ashok K. Patel", StatusBooked)
	seedAppointment(env, 102, "P002", "Dr. Ashok K. Patel", StatusBooked)
	c, rec := newRequest(e, http.MethodGet, nil, patientSession("P001", "alice"))

	if err := h.ViewAppointments(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, data := decodePage(t, rec)
	var list []Appointment
	json.Unmarshal(data["appointments"], &list)
	if len(list) != 1 || list[0].ID != 101 {
		t.Errorf("unexpected appointments: %s", data["appointments"])
	}
}

func TestHandler_Cancel(t *testing.T) {
	h, e, env := newTestHandler()
	seedAppointment(env, 101, "P001", "Dr. Ashok K. Patel", StatusBooked)
	c, rec := newRequest(e, http.MethodPost, url.Values{}, patientSession("P001", "alice"))

	if err := h.Cancel(withID(c, "101")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/view_appointment" {
		t.Errorf("expected redirect to /view_appointment, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
	if env.repo.appointments[101].Status != StatusCancelled {
		t.Errorf("expected Cancelled, got %s", env.repo.appointments[101].Status)
	}
}

func TestHandler_Cancel_Unknown(t *testing.T) {
	h, e, _ := newTestHandler()
	sess := patientSession("P001", "alice")
	c, rec := newRequest(e, http.MethodPost, url.Values{}, sess)

	if err := h.Cancel(withID(c, "999")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertFlashRedirect(t, rec, sess, "/view_appointment", "Appointment not found!")
}

func TestHandler_Cancel_NonNumericIs404(t *testing.T) {
	h, e, _ := newTestHandler()
	c, _ := newRequest(e, http.MethodPost, url.Values{}, session.New())

	err := h.Cancel(withID(c, "abc"))
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandler_Complete(t *testing.T) {
	h, e, env := newTestHandler()
	seedAppointment(env, 101, "P001", "Dr. Ashok K. Patel", StatusBooked)
	sess := doctorSession("D001", "Dr. Ashok K. Patel")
	c, rec := newRequest(e, http.MethodPost, url.Values{}, sess)

	if err := h.Complete(withID(c, "101")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertFlashRedirect(t, rec, sess, "/doctor", "Appointment marked as completed!")
	if env.repo.appointments[101].Status != StatusCompleted {
		t.Errorf("expected Completed, got %s", env.repo.appointments[101].Status)
	}
}

func TestHandler_Complete_Unknown(t *testing.T) {
	h, e, _ := newTestHandler()
	sess := doctorSession("D001", "Dr. Ashok K. Patel")
	c, rec := newRequest(e, http.MethodPost, url.Values{}, sess)

	if err := h.Complete(withID(c, "999")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertFlashRedirect(t, rec, sess, "/doctor", "Appointment not found!")
}

func TestHandler_DoctorCancel(t *testing.T) {
	h, e, env := newTestHandler()
	seedAppointment(env, 101, "P001", "Dr. Ashok K. Patel", StatusBooked)
	c, rec := newRequest(e, http.MethodPost, url.Values{}, session.New())

	if err := h.DoctorCancel(withID(c, "101")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Header().Get("Location") != "/doctor" {
		t.Errorf("expected redirect to /doctor, got %s", rec.Header().Get("Location"))
	}
	if env.repo.appointments[101].Status != StatusCancelled {
		t.Errorf("expected Cancelled, got %s", env.repo.appointments[101].Status)
	}
}

func TestRegisterRoutes_GatesBooking(t *testing.T) {
	h, e, _ := newTestHandler()
	h.RegisterRoutes(e.Group(""))

	req := httptest.NewRequest(http.MethodGet, "/book_appointment", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Errorf("expected anonymous visitor sent to /login, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
}
