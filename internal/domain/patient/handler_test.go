package patient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func newTestHandler(t *testing.T) (*Handler, *Service) {
	t.Helper()
	svc, _ := newTestService(t)
	return NewHandler(svc), svc
}

func TestHandler_RegisterPatient(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()

	body := `{"first_name":"Alice","surname":"Adams","sex":"Female","date_of_birth":"1990-01-01T00:00:00Z","payment_method":"cash"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.RegisterPatient(e.NewContext(req, rec)); err != nil {
		t.Fatalf("RegisterPatient: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var p Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.ConsultationStatus != StatusNone {
		t.Errorf("status = %q, want none", p.ConsultationStatus)
	}
}

func TestHandler_RegisterPatientValidation(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(`{"first_name":"Alice"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.RegisterPatient(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestHandler_QueueBadDate(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/queue?date=10-03-2026", nil)
	rec := httptest.NewRecorder()

	err := h.GetQueue(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestHandler_QueueDayNavigation(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()

	today := time.Now().UTC()
	yesterday := today.AddDate(0, 0, -1).Format("2006-01-02")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/queue?date="+yesterday, nil)
	rec := httptest.NewRecorder()
	if err := h.GetQueue(e.NewContext(req, rec)); err != nil {
		t.Fatalf("GetQueue: %v", err)
	}
	var back struct {
		Date     string  `json:"date"`
		PrevDate string  `json:"prev_date"`
		NextDate *string `json:"next_date"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.Date != yesterday {
		t.Errorf("date = %q, want %q", back.Date, yesterday)
	}
	if want := today.AddDate(0, 0, -2).Format("2006-01-02"); back.PrevDate != want {
		t.Errorf("prev_date = %q, want %q", back.PrevDate, want)
	}
	if back.NextDate == nil || *back.NextDate != today.Format("2006-01-02") {
		t.Errorf("next_date = %v, want today", back.NextDate)
	}

	// Today's view has no forward step.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/queue", nil)
	rec = httptest.NewRecorder()
	if err := h.GetQueue(e.NewContext(req, rec)); err != nil {
		t.Fatalf("GetQueue today: %v", err)
	}
	var front struct {
		NextDate *string `json:"next_date"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &front); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if front.NextDate != nil {
		t.Errorf("next_date for today = %q, want omitted", *front.NextDate)
	}
}

func TestHandler_TransitionConflicts(t *testing.T) {
	h, svc := newTestHandler(t)
	e := echo.New()
	id := registerTestPatient(t, svc, "Alice")

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := h.StartConsultation(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("start before check-in err = %v, want 409", err)
	}
}

func TestHandler_ExportPatients(t *testing.T) {
	h, svc := newTestHandler(t)
	e := echo.New()
	registerTestPatient(t, svc, "Alice")
	registerTestPatient(t, svc, "Bob")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/export", nil)
	rec := httptest.NewRecorder()

	if err := h.ExportPatients(e.NewContext(req, rec)); err != nil {
		t.Fatalf("ExportPatients: %v", err)
	}
	if got := rec.Header().Get(echo.HeaderContentType); got != "text/csv" {
		t.Errorf("content type = %q", got)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "First Name,Surname,ID Number") {
		t.Errorf("header = %q", lines[0])
	}
}

func TestHandler_ListPagination(t *testing.T) {
	h, svc := newTestHandler(t)
	e := echo.New()
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		registerTestPatient(t, svc, name)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients?limit=2&offset=0&sort_by=name", nil)
	rec := httptest.NewRecorder()
	if err := h.ListPatients(e.NewContext(req, rec)); err != nil {
		t.Fatalf("ListPatients: %v", err)
	}

	var resp struct {
		Data  []*Patient `json:"data"`
		Total int        `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 3 || len(resp.Data) != 2 {
		t.Errorf("total=%d page=%d, want 3 and 2", resp.Total, len(resp.Data))
	}
}
