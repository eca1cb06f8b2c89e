package tracker

import (
	"context"

	"timegrid/internal/core"
)

// Ports for outbound day-record adapters.
type (
	DayReader interface {
		// GetDay returns the record for a date. Absence is not an error:
		// a synthetic record with empty slots is returned instead.
		GetDay(ctx context.Context, date core.Date) (core.DayRecord, error)

		// GetRange returns all stored records with from <= date <= to,
		// ascending. Dates without a record are simply absent.
		GetRange(ctx context.Context, from, to core.Date) ([]core.DayRecord, error)
	}

	DayWriter interface {
		// UpsertDay atomically replaces the slot list for a date, creating
		// the record if needed, and returns the stored result with
		// timestamps. Last write wins under concurrent upserts.
		UpsertDay(ctx context.Context, date core.Date, slots []core.TimeSlot) (core.DayRecord, error)
	}

	// Pinger reports storage connectivity for readiness checks.
	Pinger interface {
		Ping(ctx context.Context) error
	}

	// Store is the full day-record store contract.
	Store interface {
		DayReader
		DayWriter
		Pinger
	}
)
