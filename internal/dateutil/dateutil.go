// Package dateutil provides date parsing and calendar-grid helpers.
package dateutil

import (
	"errors"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidClockFormat = errors.New("time must be in HH:MM format")
)

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// ParseClock parses a clock string in HH:MM format into hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	t, perr := time.Parse("15:04", s)
	if perr != nil {
		return 0, 0, ErrInvalidClockFormat
	}
	return t.Hour(), t.Minute(), nil
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay returns true if a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfWeek returns the Monday of the ISO week containing t, at midnight.
func StartOfWeek(t time.Time) time.Time {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7 in ISO week
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	monday = StartOfWeek(t)
	return monday, monday.AddDate(0, 0, 6)
}

// StartOfMonth returns the first day of t's month at midnight.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthGridRange returns the first and last day of the calendar grid
// covering t's month: the Monday of the week containing the 1st through
// the Sunday of the week containing the last day. The range always spans
// whole weeks, so partial weeks at month boundaries are included.
func MonthGridRange(t time.Time) (first, last time.Time) {
	start := StartOfMonth(t)
	end := start.AddDate(0, 1, -1) // last day of the month
	first = StartOfWeek(start)
	_, last = WeekRange(end)
	return first, last
}

// AddMonths shifts t by n months, clamping the day of month to the
// target month's length. AddDate would normalize an overflowing day
// into the following month (Jan 31 plus one month is Mar 3); clamping
// keeps Jan 31 -> Feb 28.
func AddMonths(t time.Time, n int) time.Time {
	first := StartOfMonth(t).AddDate(0, n, 0)
	lastDay := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// AtClock returns the given date with the clock set to hour:minute.
func AtClock(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}
