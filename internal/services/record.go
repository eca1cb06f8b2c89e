package services

import (
	"context"
	"fmt"
	"log/slog"

	"timegrid/internal/amqp"
	"timegrid/internal/core"
	"timegrid/internal/tracker"
)

// RecordService orchestrates day-record saves: validation, slot cleanup,
// the atomic upsert, and a best-effort save event afterwards.
type RecordService struct {
	store      tracker.Store
	amqpClient *amqp.Client
}

func NewRecordService(store tracker.Store, amqpClient *amqp.Client) *RecordService {
	return &RecordService{
		store:      store,
		amqpClient: amqpClient,
	}
}

// GetDay reads the record for a date. Unknown dates yield an empty record.
func (s *RecordService) GetDay(ctx context.Context, date core.Date) (core.DayRecord, error) {
	if date.IsZero() {
		return core.DayRecord{}, core.ErrMissingDate
	}
	return s.store.GetDay(ctx, date)
}

// SaveDay replaces the slot list for a date. An empty slot list is a valid
// save; a zero date is not. Slots missing either clock label are dropped,
// and unknown categories normalize to Neutral. The stored record, with
// storage-assigned timestamps, is returned.
func (s *RecordService) SaveDay(ctx context.Context, date core.Date, slots []core.TimeSlot) (core.DayRecord, error) {
	if date.IsZero() {
		return core.DayRecord{}, core.ErrMissingDate
	}
	if slots == nil {
		return core.DayRecord{}, core.ErrMissingSlots
	}

	cleaned := make([]core.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if !slot.WellFormed() {
			slog.WarnContext(ctx, "Dropping slot without clock labels",
				"date", date.String(),
				"activity", slot.Activity)
			continue
		}
		slot.Category = slot.Category.Normalized()
		cleaned = append(cleaned, slot)
	}

	rec, err := s.store.UpsertDay(ctx, date, cleaned)
	if err != nil {
		return core.DayRecord{}, fmt.Errorf("save day: %w", err)
	}

	// The record is durable at this point; a broker outage must not fail
	// the save.
	s.publishSaved(ctx, rec)

	return rec, nil
}

func (s *RecordService) publishSaved(ctx context.Context, rec core.DayRecord) {
	if s.amqpClient == nil {
		return
	}

	filled := 0
	for _, slot := range rec.TimeSlots {
		if slot.Filled() {
			filled++
		}
	}

	if err := s.amqpClient.PublishDaySaved(ctx, rec.Date.String(), filled); err != nil {
		slog.ErrorContext(ctx, "Failed to publish day saved event",
			"date", rec.Date.String(),
			"error", err)
	}
}

// Close releases the store and, when configured, the AMQP connection.
func (s *RecordService) Close() error {
	var errs []error

	if closer, ok := s.store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close record service: %v", errs)
	}
	return nil
}
