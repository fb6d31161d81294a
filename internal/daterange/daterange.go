// Package daterange resolves named quick-range selectors into concrete
// inclusive [from, to] calendar-date pairs. All dates are zero-padded
// YYYY-MM-DD strings, so lexicographic comparison is date comparison.
//
// "Today" is the local calendar date of the time the caller passes in;
// the TUI passes time.Now(). Local time was chosen over UTC so that a
// range resolved late in the evening matches the dates the user sees
// on their own entries.
package daterange

import (
	"errors"
	"time"
)

// Range is a named quick-range selector.
type Range string

const (
	ThisWeek    Range = "this_week"
	LastWeek    Range = "last_week"
	ThisMonth   Range = "this_month"
	LastMonth   Range = "last_month"
	Last3Months Range = "last_3_months"
	Custom      Range = "custom"
)

// Quick lists the selectors offered as export shortcuts, in display
// order, with their Spanish labels.
var Quick = []struct {
	Range Range
	Label string
}{
	{ThisWeek, "Semana actual"},
	{LastWeek, "Semana pasada"},
	{ThisMonth, "Mes actual"},
	{LastMonth, "Mes pasado"},
	{Last3Months, "Últimos 3 meses"},
	{Custom, "Personalizado"},
}

var (
	ErrMissingBound = errors.New("both dates are required")
	ErrInvertedSpan = errors.New("'from' must not be after 'to'")
	ErrBadDate      = errors.New("dates must be YYYY-MM-DD")
	ErrUnknownRange = errors.New("unknown range selector")
)

const iso = "2006-01-02"

// Resolve turns a non-custom selector into an inclusive (from, to) pair
// anchored at today. Weeks start on Monday; Sunday counts as day 6 of
// its week, so this_week never wraps into the next Monday.
func Resolve(r Range, today time.Time) (from, to string, err error) {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	switch r {
	case ThisWeek:
		return monday(day).Format(iso), day.Format(iso), nil

	case LastWeek:
		thisMonday := monday(day)
		lastMonday := thisMonday.AddDate(0, 0, -7)
		lastSunday := thisMonday.AddDate(0, 0, -1)
		return lastMonday.Format(iso), lastSunday.Format(iso), nil

	case ThisMonth:
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return first.Format(iso), day.Format(iso), nil

	case LastMonth:
		first := time.Date(day.Year(), day.Month()-1, 1, 0, 0, 0, 0, day.Location())
		// Day 0 of the current month is the last day of the previous one.
		last := time.Date(day.Year(), day.Month(), 0, 0, 0, 0, 0, day.Location())
		return first.Format(iso), last.Format(iso), nil

	case Last3Months:
		first := time.Date(day.Year(), day.Month()-3, 1, 0, 0, 0, 0, day.Location())
		return first.Format(iso), day.Format(iso), nil

	default:
		return "", "", ErrUnknownRange
	}
}

// ResolveCustom validates caller-supplied bounds. Both must be present,
// well formed, and from <= to. Violations are validation errors for the
// caller to surface; no I/O has happened by then.
func ResolveCustom(from, to string) (string, string, error) {
	if from == "" || to == "" {
		return "", "", ErrMissingBound
	}
	if _, err := time.Parse(iso, from); err != nil {
		return "", "", ErrBadDate
	}
	if _, err := time.Parse(iso, to); err != nil {
		return "", "", ErrBadDate
	}
	if from > to {
		return "", "", ErrInvertedSpan
	}
	return from, to, nil
}

// monday returns the Monday of t's week.
func monday(t time.Time) time.Time {
	offset := int(t.Weekday())
	if offset == 0 {
		offset = 7
	}
	return t.AddDate(0, 0, -(offset - 1))
}
