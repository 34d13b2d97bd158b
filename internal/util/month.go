package util

import "time"

// MonthKeyLayout formats a month as used in chart series, e.g. "2025-03"
const MonthKeyLayout = "2006-01"

// StartOfDay truncates t to midnight UTC of its calendar date
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first day of t's month
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last day of t's month
func MonthEnd(t time.Time) time.Time {
	// Day 0 of next month is the last day of this month
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

// YearBounds returns Jan 1 and Dec 31 of t's year
func YearBounds(t time.Time) (time.Time, time.Time) {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
}

// MonthsBetween returns the number of calendar months touched by [start, end], inclusive.
// Returns 0 when end is before start.
func MonthsBetween(start, end time.Time) int {
	n := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
	if n < 0 {
		return 0
	}
	return n
}

// MonthKeys lists every month in [start, end] as "YYYY-MM", oldest first
func MonthKeys(start, end time.Time) []string {
	n := MonthsBetween(start, end)
	keys := make([]string, 0, n)
	cur := MonthStart(start)
	for i := 0; i < n; i++ {
		keys = append(keys, cur.Format(MonthKeyLayout))
		cur = cur.AddDate(0, 1, 0)
	}
	return keys
}

// DaysUntil returns whole calendar days from today to target (negative when past)
func DaysUntil(today, target time.Time) int {
	return int(StartOfDay(target).Sub(StartOfDay(today)).Hours() / 24)
}

// ParseDate accepts YYYY-MM-DD or RFC 3339 and returns the calendar date as
// written, at midnight UTC. Offsets are not applied before truncation.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfDay(t), nil
}
