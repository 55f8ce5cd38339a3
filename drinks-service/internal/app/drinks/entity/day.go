package entity

import "time"

// DayOf returns midnight of t's calendar day in t's location.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// PreviousDay returns midnight of the day before t.
func PreviousDay(t time.Time) time.Time {
	return DayOf(t).AddDate(0, 0, -1)
}

// SameDay reports whether a and b fall on the same calendar day of a's location.
func SameDay(a, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b.In(a.Location())))
}
