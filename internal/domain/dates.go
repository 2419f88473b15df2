package domain

import "time"

// AddMonths adds n calendar months to t, clamping the day of month so the
// result never spills into the following month: Jan 31 + 1 month is the last
// day of February, not March 2/3 (which is what time.AddDate's normalization
// would produce).
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()

	// Normalize the target year/month first with day pinned to 1.
	target := time.Date(year, month+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())

	if last := lastDayOfMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
