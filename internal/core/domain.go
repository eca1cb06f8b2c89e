package core

import (
	"errors"
	"strings"
	"time"
)

const (
	CategoryProductive Category = "Productive"
	CategoryWaste      Category = "Waste"
	CategoryNeutral    Category = "Neutral"
)

// DateLayout is the canonical wire and storage form of a calendar date.
const DateLayout = "2006-01-02"

type (
	// Category classifies how a slot's time was spent.
	Category string

	// Date is a calendar date with day precision. The zero value is invalid.
	Date struct {
		time.Time
	}

	// TimeSlot is one 30-minute interval of a day. Start and end are
	// human-readable 12-hour clock labels ("9:00 AM").
	TimeSlot struct {
		StartTime string   `json:"startTime"`
		EndTime   string   `json:"endTime"`
		Activity  string   `json:"activity"`
		Category  Category `json:"category"`
	}

	// DayRecord is the persisted slot list for one calendar date.
	// At most one record exists per date.
	DayRecord struct {
		Date      Date       `json:"date"`
		TimeSlots []TimeSlot `json:"timeSlots"`
		CreatedAt time.Time  `json:"createdAt,omitzero"`
		UpdatedAt time.Time  `json:"updatedAt,omitzero"`
	}
)

var (
	ErrMissingDate  = errors.New("missing date")
	ErrInvalidDate  = errors.New("invalid date")
	ErrMissingSlots = errors.New("missing time slots")
)

func (c Category) Valid() bool {
	switch c {
	case CategoryProductive, CategoryWaste, CategoryNeutral:
		return true
	}
	return false
}

// Normalized returns the category itself when valid, Neutral otherwise.
// An unset category defaults to Neutral.
func (c Category) Normalized() Category {
	if c.Valid() {
		return c
	}
	return CategoryNeutral
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrMissingDate
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current local calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// AddDays returns the date shifted by n calendar days. time.AddDate
// handles month and year rollover.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// InMonth reports whether the date falls in the given calendar month.
func (d Date) InMonth(year int, month time.Month) bool {
	return d.Year() == year && d.Month() == month
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return ErrMissingDate
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Filled reports whether the slot carries a real activity. Blank-activity
// slots contribute nothing to summaries even when a category is set.
func (s TimeSlot) Filled() bool {
	return strings.TrimSpace(s.Activity) != ""
}

// WellFormed reports whether the slot has both clock labels. Slots missing
// either label are dropped during save rather than rejected.
func (s TimeSlot) WellFormed() bool {
	return strings.TrimSpace(s.StartTime) != "" && strings.TrimSpace(s.EndTime) != ""
}
