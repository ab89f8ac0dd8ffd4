package formulas

import "fmt"

var dayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// HourLabel formats an hour of day on a 12-hour clock, e.g. 0 -> "12AM", 13 -> "1PM".
func HourLabel(hour int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d%s", h, suffix)
}

// DayName returns the weekday name for a Sunday-first index, taken modulo 7.
func DayName(day int) string {
	d := day % 7
	if d < 0 {
		d += 7
	}
	return dayNames[d]
}
