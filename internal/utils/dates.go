package utils

import "time"

// StartOfDay truncates t to midnight of its calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// Today returns midnight of the current calendar day in loc.
func Today(loc *time.Location) time.Time {
	return StartOfDay(time.Now(), loc)
}

// NextDay returns midnight of the calendar day after t in loc.
func NextDay(t time.Time, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, 1)
}
