package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joshuadavidthomas/bihucal/internal/display"
	"github.com/joshuadavidthomas/bihucal/internal/holidays"
	"github.com/joshuadavidthomas/bihucal/internal/logging"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeLookuper struct {
	mu    sync.Mutex
	calls []holidays.LookupOptions
	years []int
}

func (f *fakeLookuper) Lookup(_ context.Context, year int, opts holidays.LookupOptions) holidays.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, opts)
	f.years = append(f.years, year)
	if year == 2030 {
		return holidays.Outcome{Year: year, Holidays: holidays.Fallback(year), Source: holidays.SourceFallback, Err: errors.New("decode failed")}
	}
	return holidays.Outcome{Year: year, Holidays: holidays.Fallback(year), Source: holidays.SourceCache}
}

func newTestServer(t *testing.T) (*Server, *fakeLookuper) {
	t.Helper()
	f := &fakeLookuper{}
	ctx, _ := logging.NewTestContext(logging.Flags{})
	s := New(ctx, f)
	s.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }
	return s, f
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/healthz")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("GET /healthz = %d %s", rec.Code, rec.Body.String())
	}
}

func TestGetHolidays(t *testing.T) {
	s, f := newTestServer(t)
	rec := get(t, s, "/api/holidays/2025")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body display.YearJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Year != 2025 || body.Source != "cache" || len(body.Holidays) != 4 {
		t.Errorf("body = %+v", body)
	}
	if f.calls[0].Refresh {
		t.Error("refresh should default to false")
	}
}

func TestGetHolidays_FallbackHidesFetchError(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/api/holidays/2030")

	var body display.YearJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusOK || body.Source != "fallback" || len(body.Holidays) != 4 {
		t.Errorf("status = %d, body = %+v", rec.Code, body)
	}
	if strings.Contains(rec.Body.String(), "decode failed") || strings.Contains(rec.Body.String(), `"error"`) {
		t.Errorf("fetch error leaked into response: %s", rec.Body.String())
	}
}

func TestGetHolidays_CategoryAndRefresh(t *testing.T) {
	s, f := newTestServer(t)
	rec := get(t, s, "/api/holidays/2025?category=regional&refresh=true")

	var body display.YearJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Holidays) != 1 || body.Holidays[0].Name != "Bohag Bihu" {
		t.Errorf("holidays = %+v, want only Bohag Bihu", body.Holidays)
	}
	if !f.calls[0].Refresh {
		t.Error("refresh=true not passed through")
	}

	rec = get(t, s, "/api/holidays/2025?category=other")
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Holidays == nil || len(body.Holidays) != 0 {
		t.Errorf("holidays = %#v, want empty list", body.Holidays)
	}
}

func TestGetHolidays_BadInput(t *testing.T) {
	s, f := newTestServer(t)
	for _, path := range []string{
		"/api/holidays/abc",
		"/api/holidays/0",
		"/api/holidays/2025?category=local",
		"/api/holidays/xyz/ics",
	} {
		rec := get(t, s, path)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s = %d, want 400", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"error"`) {
			t.Errorf("GET %s body = %s", path, rec.Body.String())
		}
	}
	if len(f.calls) != 0 {
		t.Errorf("provider called %d times for bad input", len(f.calls))
	}
}

func TestGetICS(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/api/holidays/2025/ics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "holidays_2025.ics") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	body := rec.Body.String()
	if strings.Count(body, "BEGIN:VEVENT") != 4 || !strings.Contains(body, "SUMMARY:Gandhi Jayanti") {
		t.Errorf("unexpected calendar:\n%s", body)
	}
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
