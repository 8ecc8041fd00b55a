package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// ClockTime is a time of day in minutes from midnight. The wire format is
// 24-hour "HH:MM"; parsing and formatting round-trip exactly.
type ClockTime int

// Noon is the morning/afternoon partition boundary.
const Noon ClockTime = 12 * 60

// EndOfDay marks midnight as an exclusive upper bound for appointment
// windows; "24:00" is the end marker of a day-spanning range.
const EndOfDay ClockTime = 24 * 60

// ParseClock parses a 24-hour "HH:MM" string.
func ParseClock(s string) (ClockTime, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return ClockTime(hour*60 + minute), nil
}

// String formats the time as 24-hour "HH:MM".
func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Display formats the time for presentation, e.g. "9:00 AM" or "12:30 PM".
func (t ClockTime) Display() string {
	hour := int(t) / 60
	minute := int(t) % 60
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, ampm)
}

// Add returns the time shifted forward by the given number of minutes.
func (t ClockTime) Add(minutes int) ClockTime {
	return t + ClockTime(minutes)
}
