package util

import "time"

// ISODate is the wire format for civil dates.
const ISODate = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(ISODate, s)
}

// FormatDate renders a civil date as YYYY-MM-DD. The instant is normalized
// to UTC first: a UTC-midnight date re-expressed in a western zone by a
// driver or caller must still format as the stored day.
func FormatDate(t time.Time) string {
	return t.UTC().Format(ISODate)
}

// Date returns the UTC-midnight time for a civil date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampedDate returns the date for a target day in a given month, clamping
// days past the end of the month to its last day (day 31 in February
// becomes Feb 28/29).
func ClampedDate(year int, month time.Month, day int) time.Time {
	if day < 1 {
		day = 1
	}
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return Date(year, month, day)
}

// AddMonthsClamped advances an anchor date by a number of calendar months,
// preserving the anchor's day-of-month where valid and clamping otherwise.
// Because the result is always derived from the anchor, Jan 31 +1 month is
// the last day of February while Jan 31 +2 months is Mar 31.
func AddMonthsClamped(anchor time.Time, months int) time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	shifted := first.AddDate(0, months, 0)
	return ClampedDate(shifted.Year(), shifted.Month(), anchor.Day())
}

// AddYearsClamped advances an anchor date by a number of calendar years,
// clamping Feb 29 anchors to Feb 28 in non-leap years.
func AddYearsClamped(anchor time.Time, years int) time.Time {
	return ClampedDate(anchor.Year()+years, anchor.Month(), anchor.Day())
}

// SameDay reports calendar-day equality in UTC, ignoring time of day. Both
// instants are normalized so that a date carried in another location still
// compares as its UTC civil day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// MonthWindow returns the first and last day of a month as an inclusive
// civil-date range.
func MonthWindow(year int, month time.Month) (start, end time.Time) {
	start = Date(year, month, 1)
	end = Date(year, month, DaysInMonth(year, month))
	return start, end
}
