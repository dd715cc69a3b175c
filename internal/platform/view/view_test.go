package view

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/medcare/frontdesk/internal/platform/session"
)

func newContext(t *testing.T, sess *session.Session) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Renderer = JSONRenderer{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if sess != nil {
		req = req.WithContext(session.NewContext(req.Context(), sess))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRender_JSONIncludesFlashes(t *testing.T) {
	sess := session.New()
	sess.AddFlash(FlashSuccess, "Account created successfully!")
	c, rec := newContext(t, sess)

	if err := Render(c, "login", nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
		t.Errorf("expected JSON content type, got %q", ct)
	}

	var page Page
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.View != "login" {
		t.Errorf("expected view login, got %q", page.View)
	}
	if len(page.Flashes) != 1 || page.Flashes[0].Message != "Account created successfully!" {
		t.Errorf("unexpected flashes: %v", page.Flashes)
	}
	if len(sess.PopFlashes()) != 0 {
		t.Error("expected flashes to be consumed by Render")
	}
}

func TestRender_EmptyFlashesEncodeAsList(t *testing.T) {
	c, rec := newContext(t, nil)
	if err := Render(c, "index", Data{"x": 1}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"flashes":[]`) {
		t.Errorf("expected empty flash list, got %s", rec.Body.String())
	}
}

func TestFlash_QueuesAndRedirects(t *testing.T) {
	sess := session.New()
	c, rec := newContext(t, sess)

	if err := Flash(c, FlashError, "Doctor not found!", "/admin"); err != nil {
		t.Fatalf("Flash: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/admin" {
		t.Errorf("expected 302 to /admin, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	flashes := sess.PopFlashes()
	if len(flashes) != 1 || flashes[0].Category != FlashError {
		t.Errorf("unexpected flashes: %v", flashes)
	}
}

func TestTemplateRenderer(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("layout.html", `{{define "flashes"}}{{range .Flashes}}[{{.Message}}]{{end}}{{end}}`)
	write("patient.html", `{{template "flashes" .}}Hello {{.Data.patient_name}}`)

	r, err := LoadTemplates(dir)
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	if err := r.Render(io.Discard, "layout", Page{View: "layout"}, nil); err == nil {
		t.Error("expected layout.html to be partials only, not a view")
	}

	var sb strings.Builder
	page := Page{
		View:    "patient",
		Data:    Data{"patient_name": "<alice>"},
		Flashes: []session.Flash{{Category: FlashSuccess, Message: "Profile updated successfully!"}},
	}
	if err := r.Render(&sb, "patient", page, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "[Profile updated successfully!]Hello &lt;alice&gt;"
	if sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}

	if err := r.Render(&sb, "missing", page, nil); err == nil {
		t.Error("expected error for unknown view")
	}
}

func TestLoadTemplates_EmptyDir(t *testing.T) {
	if _, err := LoadTemplates(t.TempDir()); err == nil {
		t.Fatal("expected error for a directory without templates")
	}
}
