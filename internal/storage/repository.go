package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"timegrid/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists one day_records row per calendar date.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping implements tracker.Pinger.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// GetDay implements tracker.DayReader. A date with no row yields a
// synthetic record with an empty slot list.
func (r *SQLiteRepository) GetDay(ctx context.Context, date core.Date) (core.DayRecord, error) {
	const q = `SELECT date, time_slots, created_at, updated_at FROM day_records WHERE date = ?`

	row := r.db.QueryRowContext(ctx, q, date.String())
	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return core.DayRecord{Date: date, TimeSlots: []core.TimeSlot{}}, nil
	}
	if err != nil {
		return core.DayRecord{}, fmt.Errorf("get day %s: %w", date, err)
	}
	return rec, nil
}

// GetRange implements tracker.DayReader.
func (r *SQLiteRepository) GetRange(ctx context.Context, from, to core.Date) ([]core.DayRecord, error) {
	const q = `SELECT date, time_slots, created_at, updated_at FROM day_records
WHERE date >= ? AND date <= ? ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, q, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("query day range %s..%s: %w", from, to, err)
	}
	defer rows.Close()

	var records []core.DayRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan day record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate day range: %w", err)
	}
	return records, nil
}

// UpsertDay implements tracker.DayWriter. The slot list is replaced in a
// single statement so concurrent savers of the same date cannot interleave;
// ON CONFLICT keeps the original created_at and bumps updated_at.
func (r *SQLiteRepository) UpsertDay(ctx context.Context, date core.Date, slots []core.TimeSlot) (core.DayRecord, error) {
	payload, err := json.Marshal(slots)
	if err != nil {
		return core.DayRecord{}, fmt.Errorf("marshal time slots: %w", err)
	}

	const q = `INSERT INTO day_records (date, time_slots, created_at, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(date) DO UPDATE SET
  time_slots = excluded.time_slots,
  updated_at = excluded.updated_at`

	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, q, date.String(), string(payload), now, now); err != nil {
		return core.DayRecord{}, fmt.Errorf("upsert day %s: %w", date, err)
	}

	// Read back the stored row for its timestamps. Under a concurrent save
	// of the same date this reflects the winning write, which is the
	// last-write-wins contract anyway.
	rec, err := r.GetDay(ctx, date)
	if err != nil {
		return core.DayRecord{}, fmt.Errorf("read back day %s: %w", date, err)
	}

	slog.InfoContext(ctx, "Day record saved",
		"date", rec.Date.String(),
		"slots", len(rec.TimeSlots))

	return rec, nil
}

func scanRecord(scan func(dest ...any) error) (core.DayRecord, error) {
	var (
		dateStr   string
		slotsJSON string
		createdAt time.Time
		updatedAt time.Time
	)
	if err := scan(&dateStr, &slotsJSON, &createdAt, &updatedAt); err != nil {
		return core.DayRecord{}, err
	}

	date, err := core.ParseDate(dateStr)
	if err != nil {
		return core.DayRecord{}, fmt.Errorf("stored date %q: %w", dateStr, err)
	}

	slots := []core.TimeSlot{}
	if err := json.Unmarshal([]byte(slotsJSON), &slots); err != nil {
		return core.DayRecord{}, fmt.Errorf("unmarshal time slots for %s: %w", dateStr, err)
	}

	return core.DayRecord{
		Date:      date,
		TimeSlots: slots,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
