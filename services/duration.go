package services

import "time"

// MonthsBetween counts the whole calendar months from start to end, rounding
// a partial trailing month up so a short-term deal never reports a zero
// duration. Returns 0 when end is not after start, otherwise at least 1.
// The schedule generator and the profit estimator both rely on this exact
// convention; keep them in sync.
func MonthsBetween(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() > start.Day() {
		months++
	}
	if months < 1 {
		months = 1
	}
	return months
}

// AddMonths is plain calendar month addition with standard rollover
// (e.g. Jan 31 + 1 month = Mar 2/3 per time.AddDate).
func AddMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}
