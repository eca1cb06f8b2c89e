package core

import "time"

// DaySummary is the derived per-day breakdown of minutes per category.
// Only filled slots count; each contributes exactly SlotMinutes to its
// category bucket. FilledSlots is the count of filled slots.
type DaySummary struct {
	Date              Date `json:"date"`
	ProductiveMinutes int  `json:"productive"`
	WasteMinutes      int  `json:"waste"`
	NeutralMinutes    int  `json:"neutral"`
	FilledSlots       int  `json:"totalSlots"`
}

// CategoryTotals holds minute sums per category across a set of summaries.
type CategoryTotals struct {
	Productive int `json:"productive"`
	Waste      int `json:"waste"`
	Neutral    int `json:"neutral"`
}

// Summarize reduces a record's slots to per-category minute counts.
// Blank-activity slots are skipped even when categorized.
func Summarize(rec DayRecord) DaySummary {
	sum := DaySummary{Date: rec.Date}
	for _, slot := range rec.TimeSlots {
		if !slot.Filled() {
			continue
		}
		switch slot.Category {
		case CategoryProductive:
			sum.ProductiveMinutes += SlotMinutes
		case CategoryWaste:
			sum.WasteMinutes += SlotMinutes
		case CategoryNeutral:
			sum.NeutralMinutes += SlotMinutes
		}
	}
	sum.FilledSlots = (sum.ProductiveMinutes + sum.WasteMinutes + sum.NeutralMinutes) / SlotMinutes
	return sum
}

// ZeroSummary is the summary of a date with no stored record.
func ZeroSummary(d Date) DaySummary {
	return DaySummary{Date: d}
}

// ReduceTotals sums category minutes across summaries. Order-independent;
// an empty or nil input yields all-zero totals.
func ReduceTotals(summaries []DaySummary) CategoryTotals {
	var t CategoryTotals
	for _, s := range summaries {
		t.Productive += s.ProductiveMinutes
		t.Waste += s.WasteMinutes
		t.Neutral += s.NeutralMinutes
	}
	return t
}

// TrailingWindow returns the last n entries of an already-fetched history.
// It never queries storage; it reduces whatever the caller fetched.
func TrailingWindow(summaries []DaySummary, n int) []DaySummary {
	if n >= len(summaries) {
		return summaries
	}
	return summaries[len(summaries)-n:]
}

// FilterMonth keeps summaries whose date falls in the given calendar month.
func FilterMonth(summaries []DaySummary, year int, month time.Month) []DaySummary {
	var out []DaySummary
	for _, s := range summaries {
		if s.Date.InMonth(year, month) {
			out = append(out, s)
		}
	}
	return out
}
