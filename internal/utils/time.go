package utils

import "time"

// CivilDate drops the clock and zone from t, keeping the calendar date as
// seen in t's own location.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current local calendar date.
func Today() time.Time {
	return CivilDate(time.Now())
}

// DaysUntil counts whole calendar days from now to target. Negative means
// target is in the past.
func DaysUntil(target, now time.Time) int {
	return int(CivilDate(target).Sub(CivilDate(now)).Hours() / 24)
}

// FormatLong renders a date like "March 4, 2024".
func FormatLong(t time.Time) string {
	return t.Format("January 2, 2006")
}
