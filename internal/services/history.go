package services

import (
	"context"
	"fmt"

	"timegrid/internal/core"
	"timegrid/internal/tracker"
)

const (
	// DefaultWindowDays is the history window when the caller gives none.
	DefaultWindowDays = 7
	// MaxWindowDays bounds the range read; a window is at most one year.
	MaxWindowDays = 366
)

// HistoryService derives gap-free per-day summaries from the record store.
// It owns no state and never mutates the store.
type HistoryService struct {
	reader tracker.DayReader
}

func NewHistoryService(reader tracker.DayReader) *HistoryService {
	return &HistoryService{reader: reader}
}

// SummarizeRange returns exactly windowDays summaries for the calendar days
// ending at end (inclusive), ascending. Dates without a stored record get a
// zeroed summary rather than being omitted.
func (s *HistoryService) SummarizeRange(ctx context.Context, end core.Date, windowDays int) ([]core.DaySummary, error) {
	windowDays = ClampWindow(windowDays)
	start := end.AddDays(-(windowDays - 1))

	records, err := s.reader.GetRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("read day range: %w", err)
	}

	byDate := make(map[string]core.DayRecord, len(records))
	for _, rec := range records {
		byDate[rec.Date.String()] = rec
	}

	summaries := make([]core.DaySummary, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		d := start.AddDays(i)
		if rec, ok := byDate[d.String()]; ok {
			summaries = append(summaries, core.Summarize(rec))
		} else {
			summaries = append(summaries, core.ZeroSummary(d))
		}
	}
	return summaries, nil
}

// ClampWindow bounds a requested window to [1, MaxWindowDays], substituting
// the default for non-positive values.
func ClampWindow(windowDays int) int {
	if windowDays <= 0 {
		return DefaultWindowDays
	}
	if windowDays > MaxWindowDays {
		return MaxWindowDays
	}
	return windowDays
}
