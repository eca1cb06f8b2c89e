package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"timegrid/internal/core"
	"timegrid/internal/services"
	"timegrid/internal/tracker/memory"
)

func newTestServer() *Server {
	store := memory.New()
	records := services.NewRecordService(store, nil)
	history := services.NewHistoryService(store)
	return NewServer(":0", records, history, store, 7)
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthAndReady(t *testing.T) {
	srv := newTestServer()
	for _, path := range []string{"/healthz", "/readyz"} {
		rr := do(t, srv, http.MethodGet, path, "")
		if rr.Code != 200 {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestGetDayUnknownDateReturnsEmptyRecord(t *testing.T) {
	srv := newTestServer()

	rr := do(t, srv, http.MethodGet, "/api/activities/2024-01-01", "")
	if rr.Code != 200 {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}

	var rec core.DayRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Date.String() != "2024-01-01" {
		t.Fatalf("date = %s", rec.Date)
	}
	if len(rec.TimeSlots) != 0 {
		t.Fatalf("expected empty slots, got %d", len(rec.TimeSlots))
	}
}

func TestGetDayRejectsMalformedDate(t *testing.T) {
	srv := newTestServer()
	rr := do(t, srv, http.MethodGet, "/api/activities/january-first", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestSaveDayRoundTripAndReplace(t *testing.T) {
	srv := newTestServer()

	body := `{"date":"2024-03-10","timeSlots":[
		{"startTime":"9:00 AM","endTime":"9:30 AM","activity":"write report","category":"Productive"},
		{"startTime":"9:30 AM","endTime":"10:00 AM","activity":"","category":"Waste"}
	]}`
	rr := do(t, srv, http.MethodPost, "/api/activities", body)
	if rr.Code != 200 {
		t.Fatalf("save status=%d body=%s", rr.Code, rr.Body.String())
	}

	var saved core.DayRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Fatalf("expected storage timestamps in response")
	}

	rr = do(t, srv, http.MethodGet, "/api/activities/2024-03-10", "")
	var got core.DayRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.TimeSlots) != 2 || got.TimeSlots[0].Activity != "write report" {
		t.Fatalf("round trip mismatch: %+v", got.TimeSlots)
	}

	// Second save wholly replaces the first.
	rr = do(t, srv, http.MethodPost, "/api/activities",
		`{"date":"2024-03-10","timeSlots":[{"startTime":"5:00 PM","endTime":"5:30 PM","activity":"run","category":"Productive"}]}`)
	if rr.Code != 200 {
		t.Fatalf("replace status=%d", rr.Code)
	}
	rr = do(t, srv, http.MethodGet, "/api/activities/2024-03-10", "")
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.TimeSlots) != 1 || got.TimeSlots[0].Activity != "run" {
		t.Fatalf("expected replacement, got %+v", got.TimeSlots)
	}
}

func TestSaveDayValidation(t *testing.T) {
	srv := newTestServer()

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing date", `{"timeSlots":[]}`, http.StatusBadRequest},
		{"null date", `{"date":null,"timeSlots":[]}`, http.StatusBadRequest},
		{"malformed date", `{"date":"10-03-2024","timeSlots":[]}`, http.StatusBadRequest},
		{"missing slots", `{"date":"2024-01-01"}`, http.StatusBadRequest},
		{"slots not an array", `{"date":"2024-01-01","timeSlots":"busy"}`, http.StatusBadRequest},
		{"not json", `date=2024-01-01`, http.StatusBadRequest},
		{"empty slots are valid", `{"date":"2024-01-01","timeSlots":[]}`, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, srv, http.MethodPost, "/api/activities", tc.body)
			if rr.Code != tc.want {
				t.Fatalf("status=%d, want %d (body=%s)", rr.Code, tc.want, rr.Body.String())
			}
		})
	}
}

func TestHistoryWindowGapFree(t *testing.T) {
	srv := newTestServer()

	rr := do(t, srv, http.MethodPost, "/api/activities",
		`{"date":"2024-03-10","timeSlots":[
			{"startTime":"9:00 AM","endTime":"9:30 AM","activity":"write report","category":"Productive"},
			{"startTime":"9:30 AM","endTime":"10:00 AM","activity":"","category":"Waste"}
		]}`)
	if rr.Code != 200 {
		t.Fatalf("save status=%d", rr.Code)
	}

	rr = do(t, srv, http.MethodGet, "/api/activities/history?end=2024-03-10&days=7", "")
	if rr.Code != 200 {
		t.Fatalf("history status=%d body=%s", rr.Code, rr.Body.String())
	}

	var summaries []core.DaySummary
	if err := json.Unmarshal(rr.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(summaries) != 7 {
		t.Fatalf("expected 7 summaries, got %d", len(summaries))
	}
	for i, sum := range summaries {
		want := core.NewDate(2024, 3, 4).AddDays(i).String()
		if sum.Date.String() != want {
			t.Fatalf("position %d: %s, want %s", i, sum.Date, want)
		}
	}

	last := summaries[6]
	if last.ProductiveMinutes != 30 || last.WasteMinutes != 0 || last.NeutralMinutes != 0 || last.FilledSlots != 1 {
		t.Fatalf("2024-03-10 summary wrong: %+v", last)
	}
}

func TestHistoryCacheInvalidatedBySave(t *testing.T) {
	srv := newTestServer()

	// Prime the cache with an all-zero window.
	rr := do(t, srv, http.MethodGet, "/api/activities/history?end=2024-03-10&days=7", "")
	if rr.Code != 200 {
		t.Fatalf("history status=%d", rr.Code)
	}

	rr = do(t, srv, http.MethodPost, "/api/activities",
		`{"date":"2024-03-09","timeSlots":[{"startTime":"9:00 AM","endTime":"9:30 AM","activity":"a","category":"Neutral"}]}`)
	if rr.Code != 200 {
		t.Fatalf("save status=%d", rr.Code)
	}

	rr = do(t, srv, http.MethodGet, "/api/activities/history?end=2024-03-10&days=7", "")
	var summaries []core.DaySummary
	if err := json.Unmarshal(rr.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summaries[5].NeutralMinutes != 30 {
		t.Fatalf("stale cache after save: %+v", summaries[5])
	}
}

func TestHistoryRejectsBadParams(t *testing.T) {
	srv := newTestServer()
	for _, path := range []string{
		"/api/activities/history?days=zero",
		"/api/activities/history?days=-1",
		"/api/activities/history?end=bad-date",
	} {
		rr := do(t, srv, http.MethodGet, path, "")
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, rr.Code)
		}
	}
}

func TestTotalsReductions(t *testing.T) {
	srv := newTestServer()

	// Save inside the current month so the monthly filter finds it.
	today := core.Today()
	rr := do(t, srv, http.MethodPost, "/api/activities",
		`{"date":"`+today.String()+`","timeSlots":[
			{"startTime":"9:00 AM","endTime":"9:30 AM","activity":"work","category":"Productive"},
			{"startTime":"9:30 AM","endTime":"10:00 AM","activity":"scrolling","category":"Waste"}
		]}`)
	if rr.Code != 200 {
		t.Fatalf("save status=%d", rr.Code)
	}

	rr = do(t, srv, http.MethodGet, "/api/activities/totals?days=30", "")
	if rr.Code != 200 {
		t.Fatalf("totals status=%d body=%s", rr.Code, rr.Body.String())
	}

	var resp totalsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Weekly.Productive != 30 || resp.Weekly.Waste != 30 {
		t.Fatalf("weekly totals wrong: %+v", resp.Weekly)
	}
	if resp.Monthly.Productive != 30 || resp.Monthly.Waste != 30 {
		t.Fatalf("monthly totals wrong: %+v", resp.Monthly)
	}
}

func TestSlotTemplate(t *testing.T) {
	srv := newTestServer()

	rr := do(t, srv, http.MethodGet, "/api/slots/template", "")
	if rr.Code != 200 {
		t.Fatalf("template status=%d", rr.Code)
	}

	var slots []core.TimeSlot
	if err := json.Unmarshal(rr.Body.Bytes(), &slots); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(slots) != core.SlotsPerDay {
		t.Fatalf("expected %d slots, got %d", core.SlotsPerDay, len(slots))
	}
	if slots[0].StartTime != "12:00 AM" || slots[0].Category != core.CategoryNeutral {
		t.Fatalf("first slot wrong: %+v", slots[0])
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer()
	rr := do(t, srv, http.MethodDelete, "/api/activities", `{}`)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}
