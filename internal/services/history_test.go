package services

import (
	"context"
	"testing"

	"timegrid/internal/core"
	"timegrid/internal/tracker/memory"
)

func TestSummarizeRangeGapFree(t *testing.T) {
	store := memory.New()
	svc := NewHistoryService(store)
	end := core.NewDate(2024, 3, 10)

	// Sparse store: only two of the seven days have records.
	mustUpsert(t, store, core.NewDate(2024, 3, 5), []core.TimeSlot{
		{StartTime: "9:00 AM", EndTime: "9:30 AM", Activity: "standup", Category: core.CategoryNeutral},
	})
	mustUpsert(t, store, core.NewDate(2024, 3, 8), []core.TimeSlot{
		{StartTime: "9:00 AM", EndTime: "9:30 AM", Activity: "deep work", Category: core.CategoryProductive},
		{StartTime: "9:30 AM", EndTime: "10:00 AM", Activity: "deep work", Category: core.CategoryProductive},
	})

	summaries, err := svc.SummarizeRange(context.Background(), end, 7)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(summaries) != 7 {
		t.Fatalf("expected exactly 7 summaries, got %d", len(summaries))
	}

	// Ascending, no gaps.
	for i, sum := range summaries {
		want := end.AddDays(i - 6).String()
		if sum.Date.String() != want {
			t.Fatalf("position %d: date %s, want %s", i, sum.Date, want)
		}
	}

	if summaries[1].NeutralMinutes != 30 || summaries[1].FilledSlots != 1 {
		t.Fatalf("2024-03-05 summary wrong: %+v", summaries[1])
	}
	if summaries[4].ProductiveMinutes != 60 || summaries[4].FilledSlots != 2 {
		t.Fatalf("2024-03-08 summary wrong: %+v", summaries[4])
	}
	for _, i := range []int{0, 2, 3, 5, 6} {
		if summaries[i] != core.ZeroSummary(summaries[i].Date) {
			t.Fatalf("position %d should be zeroed: %+v", i, summaries[i])
		}
	}
}

func TestSummarizeRangeBlankActivityScenario(t *testing.T) {
	store := memory.New()
	svc := NewHistoryService(store)
	end := core.NewDate(2024, 3, 10)

	mustUpsert(t, store, end, []core.TimeSlot{
		{StartTime: "9:00 AM", EndTime: "9:30 AM", Activity: "write report", Category: core.CategoryProductive},
		{StartTime: "9:30 AM", EndTime: "10:00 AM", Activity: "", Category: core.CategoryWaste},
	})

	summaries, err := svc.SummarizeRange(context.Background(), end, 7)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	last := summaries[6]
	if last.Date.String() != "2024-03-10" {
		t.Fatalf("last date = %s", last.Date)
	}
	if last.ProductiveMinutes != 30 || last.WasteMinutes != 0 || last.NeutralMinutes != 0 || last.FilledSlots != 1 {
		t.Fatalf("scenario summary wrong: %+v", last)
	}
	for i := 0; i < 6; i++ {
		if summaries[i] != core.ZeroSummary(summaries[i].Date) {
			t.Fatalf("day %d should be zeroed: %+v", i, summaries[i])
		}
	}
}

func TestSummarizeRangeCrossesMonthBoundary(t *testing.T) {
	store := memory.New()
	svc := NewHistoryService(store)

	summaries, err := svc.SummarizeRange(context.Background(), core.NewDate(2024, 3, 2), 5)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(summaries) != 5 {
		t.Fatalf("expected 5, got %d", len(summaries))
	}
	if summaries[0].Date.String() != "2024-02-27" {
		t.Fatalf("window start = %s, want 2024-02-27", summaries[0].Date)
	}
}

func TestClampWindow(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, DefaultWindowDays},
		{-5, DefaultWindowDays},
		{1, 1},
		{31, 31},
		{366, 366},
		{10000, MaxWindowDays},
	}
	for i, tc := range cases {
		if got := ClampWindow(tc.in); got != tc.want {
			t.Fatalf("case %d: ClampWindow(%d) = %d, want %d", i, tc.in, got, tc.want)
		}
	}
}

func mustUpsert(t *testing.T, store *memory.Store, d core.Date, slots []core.TimeSlot) {
	t.Helper()
	if _, err := store.UpsertDay(context.Background(), d, slots); err != nil {
		t.Fatalf("upsert %s: %v", d, err)
	}
}
