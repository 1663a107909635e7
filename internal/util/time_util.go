package util

import (
	"time"
)

const layout = "2006-01-02"

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// ToDate drops the time of day, keeping the calendar date
func ToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func DateLte(t1, t2 time.Time) bool {
	return t1.Before(t2) || t1.Format(layout) == t2.Format(layout)
}

func DateEq(t1, t2 time.Time) bool {
	return t1.Format(layout) == t2.Format(layout)
}

// DaysBetween counts calendar days from start to end, ignoring
// time of day. negative if end is before start
func DaysBetween(start, end time.Time) int {
	hours := ToDate(end).Sub(ToDate(start)).Hours()
	if hours < 0 {
		return -int(-hours/24 + 0.5)
	}
	return int(hours/24 + 0.5)
}

// FirstOfNextMonth returns the first day of the month after t
func FirstOfNextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(layout, s)
}
