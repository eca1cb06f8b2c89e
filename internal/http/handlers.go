package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"timegrid/internal/core"
	applog "timegrid/internal/log"
)

// saveDayRequest mirrors the POST /api/activities body. Pointers
// distinguish an absent field from an empty one: a missing timeSlots array
// is invalid input, an empty array is a valid save.
type saveDayRequest struct {
	Date      *string          `json:"date"`
	TimeSlots *[]core.TimeSlot `json:"timeSlots"`
}

type totalsResponse struct {
	Weekly  core.CategoryTotals `json:"weekly"`
	Monthly core.CategoryTotals `json:"monthly"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the timegrid API",
	})
}

// handleGetDay returns the record for a date. Unknown dates are not an
// error: the response carries an empty slot list.
func (s *Server) handleGetDay(w http.ResponseWriter, r *http.Request) {
	date, err := core.ParseDate(r.PathValue("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	rec, err := s.records.GetDay(r.Context(), date)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Error fetching day record", applog.FieldError, err, applog.FieldDate, date.String())
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// handleSaveDay upserts the slot list for a date.
func (s *Server) handleSaveDay(w http.ResponseWriter, r *http.Request) {
	var req saveDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Date == nil || req.TimeSlots == nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, err := core.ParseDate(*req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	slots := *req.TimeSlots
	if slots == nil {
		slots = []core.TimeSlot{}
	}

	rec, err := s.records.SaveDay(r.Context(), date, slots)
	if err != nil {
		if isInvalidInput(err) {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Error saving day record", applog.FieldError, err, applog.FieldDate, date.String())
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	s.historyCache.Purge()

	writeJSON(w, http.StatusOK, rec)
}

// handleHistory returns one summary per day for the requested window,
// ascending and gap-free. Defaults: the configured window, ending today.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	end, days, err := s.parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	summaries, err := s.getHistory(r, end, days)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Error fetching history", applog.FieldError, err, applog.FieldDate, end.String(), applog.FieldWindowDays, days)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

// handleTotals reduces one fetched history two ways: a trailing 7-day
// window and a current-calendar-month filter. Both reductions work on the
// already-fetched summaries, not on fresh store queries.
func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	end, days, err := s.parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	summaries, err := s.getHistory(r, end, days)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Error fetching totals history", applog.FieldError, err, applog.FieldDate, end.String(), applog.FieldWindowDays, days)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	now := time.Now()
	resp := totalsResponse{
		Weekly:  core.ReduceTotals(core.TrailingWindow(summaries, 7)),
		Monthly: core.ReduceTotals(core.FilterMonth(summaries, now.Year(), now.Month())),
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleSlotTemplate returns the canonical empty 48-slot day.
func (s *Server) handleSlotTemplate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, core.GenerateSlots())
}

// parseWindow reads the optional end and days query parameters.
func (s *Server) parseWindow(r *http.Request) (core.Date, int, error) {
	end := core.Today()
	days := s.defaultWindow

	if v := r.URL.Query().Get("end"); v != "" {
		parsed, err := core.ParseDate(v)
		if err != nil {
			return core.Date{}, 0, err
		}
		end = parsed
	}
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return core.Date{}, 0, errors.New("invalid days")
		}
		days = n
	}

	return end, days, nil
}

// getHistory serves summaries through the TTL'd cache.
func (s *Server) getHistory(r *http.Request, end core.Date, days int) ([]core.DaySummary, error) {
	key := end.String() + ":" + strconv.Itoa(days)
	if cached, found := s.historyCache.Get(key); found {
		applog.FromContext(r.Context()).DebugContext(r.Context(), "History cache hit", applog.FieldDate, end.String(), applog.FieldWindowDays, days)
		return cached, nil
	}

	summaries, err := s.history.SummarizeRange(r.Context(), end, days)
	if err != nil {
		return nil, err
	}

	s.historyCache.Set(key, summaries)
	return summaries, nil
}

func isInvalidInput(err error) bool {
	return errors.Is(err, core.ErrMissingDate) ||
		errors.Is(err, core.ErrInvalidDate) ||
		errors.Is(err, core.ErrMissingSlots)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
