package memory

import (
	"context"
	"reflect"
	"testing"

	"timegrid/internal/core"
)

func TestGetDayAbsentReturnsEmptyRecord(t *testing.T) {
	s := New()
	d := core.NewDate(2024, 1, 1)

	rec, err := s.GetDay(context.Background(), d)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if rec.Date.String() != "2024-01-01" {
		t.Fatalf("date = %s", rec.Date)
	}
	if rec.TimeSlots == nil || len(rec.TimeSlots) != 0 {
		t.Fatalf("expected empty non-nil slots, got %#v", rec.TimeSlots)
	}
}

func TestUpsertRoundTripAndReplace(t *testing.T) {
	s := New()
	d := core.NewDate(2024, 3, 10)
	first := []core.TimeSlot{
		{StartTime: "9:00 AM", EndTime: "9:30 AM", Activity: "write report", Category: core.CategoryProductive},
	}

	rec, err := s.UpsertDay(context.Background(), d, first)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}

	got, err := s.GetDay(context.Background(), d)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got.TimeSlots, first) {
		t.Fatalf("round trip mismatch: %#v", got.TimeSlots)
	}

	// Second save wholly replaces, keeps created_at.
	second := []core.TimeSlot{
		{StartTime: "1:00 PM", EndTime: "1:30 PM", Activity: "nap", Category: core.CategoryNeutral},
		{StartTime: "1:30 PM", EndTime: "2:00 PM", Activity: "emails", Category: core.CategoryProductive},
	}
	rec2, err := s.UpsertDay(context.Background(), d, second)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if !rec2.CreatedAt.Equal(rec.CreatedAt) {
		t.Fatalf("created_at must survive replacement")
	}
	got, _ = s.GetDay(context.Background(), d)
	if !reflect.DeepEqual(got.TimeSlots, second) {
		t.Fatalf("expected full replacement, got %#v", got.TimeSlots)
	}
}

func TestUpsertEmptySlotsIsValid(t *testing.T) {
	s := New()
	d := core.NewDate(2024, 1, 1)

	if _, err := s.UpsertDay(context.Background(), d, []core.TimeSlot{}); err != nil {
		t.Fatalf("empty slot list must be a valid save: %v", err)
	}
	rec, _ := s.GetDay(context.Background(), d)
	if rec.TimeSlots == nil || len(rec.TimeSlots) != 0 {
		t.Fatalf("expected empty slots, got %#v", rec.TimeSlots)
	}
}

func TestGetRangeOrderedAndBounded(t *testing.T) {
	s := New()
	for _, day := range []int{12, 10, 14, 8} {
		d := core.NewDate(2024, 3, day)
		if _, err := s.UpsertDay(context.Background(), d, []core.TimeSlot{}); err != nil {
			t.Fatalf("upsert %s: %v", d, err)
		}
	}

	recs, err := s.GetRange(context.Background(), core.NewDate(2024, 3, 9), core.NewDate(2024, 3, 13))
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Date.String() != "2024-03-10" || recs[1].Date.String() != "2024-03-12" {
		t.Fatalf("wrong order: %s, %s", recs[0].Date, recs[1].Date)
	}
}

func TestStoredRecordIsIsolatedFromCallerMutation(t *testing.T) {
	s := New()
	d := core.NewDate(2024, 3, 10)
	slots := []core.TimeSlot{{StartTime: "9:00 AM", EndTime: "9:30 AM", Activity: "a", Category: core.CategoryNeutral}}
	if _, err := s.UpsertDay(context.Background(), d, slots); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	slots[0].Activity = "mutated"

	rec, _ := s.GetDay(context.Background(), d)
	if rec.TimeSlots[0].Activity != "a" {
		t.Fatalf("store must copy slot lists")
	}
}
