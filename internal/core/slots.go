package core

import "fmt"

const (
	// SlotMinutes is the fixed length of every slot.
	SlotMinutes = 30
	// SlotsPerDay is the number of slots covering 00:00-24:00.
	SlotsPerDay = 24 * 60 / SlotMinutes
)

// GenerateSlots returns the canonical 48-slot template for a day: 30-minute
// intervals from midnight to midnight, empty activity, Neutral category.
// Deterministic and side-effect free.
func GenerateSlots() []TimeSlot {
	slots := make([]TimeSlot, 0, SlotsPerDay)
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m += SlotMinutes {
			slots = append(slots, TimeSlot{
				StartTime: ClockLabel(h, m),
				EndTime:   ClockLabel(h, m+SlotMinutes),
				Activity:  "",
				Category:  CategoryNeutral,
			})
		}
	}
	return slots
}

// ClockLabel formats a 24-hour time as a 12-hour clock string with AM/PM.
// Hours 0 and 12 both render as "12"; minutes are zero-padded. Minute
// values of 60 and above roll into the next hour, so the 23:30 slot ends
// at "12:00 AM".
func ClockLabel(hour, minute int) string {
	hour += minute / 60
	minute %= 60
	hour %= 24

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, suffix)
}
