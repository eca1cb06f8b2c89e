package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"timegrid/internal/core"
)

// Store is an in-memory day-record store. It backs the memory data backend
// and the test suites; semantics match the SQLite repository.
type Store struct {
	mu      sync.Mutex
	records map[string]core.DayRecord
}

func New() *Store {
	return &Store{records: make(map[string]core.DayRecord)}
}

// GetDay returns the stored record or a synthetic empty one.
func (s *Store) GetDay(_ context.Context, date core.Date) (core.DayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[date.String()]
	if !ok {
		return core.DayRecord{Date: date, TimeSlots: []core.TimeSlot{}}, nil
	}
	return copyRecord(rec), nil
}

// GetRange returns stored records with from <= date <= to, ascending.
func (s *Store) GetRange(_ context.Context, from, to core.Date) ([]core.DayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.DayRecord
	for key, rec := range s.records {
		if key >= from.String() && key <= to.String() {
			out = append(out, copyRecord(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date.Time) })
	return out, nil
}

// UpsertDay replaces the slot list for a date while holding the lock, so a
// concurrent read observes either the old or the new list, never a mix.
func (s *Store) UpsertDay(_ context.Context, date core.Date, slots []core.TimeSlot) (core.DayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	rec, ok := s.records[date.String()]
	if !ok {
		rec = core.DayRecord{Date: date, CreatedAt: now}
	}
	rec.TimeSlots = append([]core.TimeSlot(nil), slots...)
	if rec.TimeSlots == nil {
		rec.TimeSlots = []core.TimeSlot{}
	}
	rec.UpdatedAt = now
	s.records[date.String()] = rec

	return copyRecord(rec), nil
}

// Ping always succeeds; memory is never unavailable.
func (s *Store) Ping(context.Context) error { return nil }

func copyRecord(rec core.DayRecord) core.DayRecord {
	out := rec
	out.TimeSlots = append([]core.TimeSlot(nil), rec.TimeSlots...)
	if out.TimeSlots == nil {
		out.TimeSlots = []core.TimeSlot{}
	}
	return out
}
